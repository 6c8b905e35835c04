// core/thermo/conditions.go
package thermo

import (
	"fmt"
	"math"
	"strings"

	"primerscore/core/params"
)

// Conditions holds the solution knobs every calculation depends on.
type Conditions struct {
	OligoM float64 // total strand concentration Ct, mol/L
	NaM    float64 // monovalent cations, mol/L
	MgM    float64 // magnesium, mol/L
	DNTPM  float64 // total dNTP, mol/L (chelates Mg2+)
	TempC  float64 // temperature for ΔG reporting and folding, °C
}

// Defaults: 250 nM oligo, 50 mM Na+, no Mg2+/dNTP, 37 °C.
const (
	DefaultOligoM = 250e-9
	DefaultNaM    = 0.05
	DefaultTempC  = 37.0
)

// DefaultConditions returns the documented defaults.
func DefaultConditions() Conditions {
	return Conditions{OligoM: DefaultOligoM, NaM: DefaultNaM, TempC: DefaultTempC}
}

// Validate rejects out-of-range inputs instead of clamping them.
func (c Conditions) Validate() error {
	bad := func(format string, a ...any) error {
		return fmt.Errorf("%w: %s", params.ErrInvalidConfiguration, fmt.Sprintf(format, a...))
	}
	for name, v := range map[string]float64{"oligo": c.OligoM, "Na+": c.NaM, "Mg2+": c.MgM, "dNTP": c.DNTPM, "temperature": c.TempC} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return bad("%s concentration is not a finite number", name)
		}
	}
	switch {
	case c.OligoM <= 0 || c.OligoM > 1:
		return bad("oligo concentration %g M out of range (0, 1]", c.OligoM)
	case c.NaM < 0 || c.NaM > 5:
		return bad("Na+ %g M out of range [0, 5]", c.NaM)
	case c.MgM < 0 || c.MgM > 1:
		return bad("Mg2+ %g M out of range [0, 1]", c.MgM)
	case c.DNTPM < 0 || c.DNTPM > 1:
		return bad("dNTP %g M out of range [0, 1]", c.DNTPM)
	case c.NaM == 0 && c.MgM <= c.DNTPM:
		return bad("no free cations (Na+ 0, Mg2+ %g M, dNTP %g M)", c.MgM, c.DNTPM)
	case c.TempC < -20 || c.TempC > 150:
		return bad("temperature %g °C out of range [-20, 150]", c.TempC)
	}
	return nil
}

// ValidateFor is Validate plus the check that set can derive a Na+
// equivalent from these cations. Sets without a divalent term need Na+.
func (c Conditions) ValidateFor(set *params.Set) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.EffectiveMonovalent(set) <= 0 {
		return fmt.Errorf("%w: %s has no Na+ equivalent for these cations", params.ErrInvalidConfiguration, set.ID())
	}
	return nil
}

// EffectiveMonovalent returns the Na+-equivalent that set uses in its salt
// correction. Sets without a divalent term ignore Mg2+.
func (c Conditions) EffectiveMonovalent(set *params.Set) float64 {
	return set.NaEquivalent(c.NaM, c.MgM, c.DNTPM)
}

// saltKey is the canonical form of the inputs Tm depends on.
func (c Conditions) saltKey() string {
	return fmt.Sprintf("ct=%g;na=%g;mg=%g;dntp=%g", c.OligoM, c.NaM, c.MgM, c.DNTPM)
}

// Key is the canonical form of every field, for caches of temperature
// dependent results.
func (c Conditions) Key() string {
	return fmt.Sprintf("%s;t=%g", c.saltKey(), c.TempC)
}

// ParseConc parses "50mM", "250nM", "3uM", "0.05" → mol/L.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	unit := ""
	val := 0.0
	n, err := fmt.Sscanf(s, "%f%s", &val, &unit)
	if err != nil && n != 1 {
		return 0, fmt.Errorf("%w: invalid conc %q: %v", params.ErrInvalidConfiguration, s, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("%w: negative conc %q", params.ErrInvalidConfiguration, s)
	}
	switch unit {
	case "m", "":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm", "µm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q in %q", params.ErrInvalidConfiguration, unit, s)
	}
}
