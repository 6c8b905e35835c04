// core/params/params.go
// Nearest-neighbor parameter sets for DNA duplexes and single-strand folds.
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol), loop penalties as ΔG at 37 °C.
//
// Keys are written top/bottom with the top strand 5'→3' and the bottom strand
// 3'→5' underneath it, e.g. "CA/GT". A key and its 180° rotation describe the
// same stack ("ab/cd" ≡ "dc/ba"); lookups try both. '.' marks an unpaired
// (dangling) position in dangling-end keys.
//
// This package has no dependencies on the calculators; thermo and fold import it.
package params

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	// Rcal is the gas constant in cal/(K·mol).
	Rcal = 1.9872
	// T37 is 37 °C in kelvin; loop tables are tabulated at this temperature.
	T37 = 310.15
)

var (
	// ErrInvalidConfiguration reports malformed presets, weights, salt or
	// concentration inputs.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrUnsupportedParameters reports a lookup for a pair/stack that the
	// active parameter set does not tabulate.
	ErrUnsupportedParameters = errors.New("unsupported parameter combination")
)

// Thermo is an (ΔH, ΔS) pair.
type Thermo struct {
	DH float64 // kcal/mol
	DS float64 // cal/(K·mol)
}

// Add returns t + o.
func (t Thermo) Add(o Thermo) Thermo { return Thermo{DH: t.DH + o.DH, DS: t.DS + o.DS} }

// DG returns ΔG (kcal/mol) at tempC.
func (t Thermo) DG(tempC float64) float64 {
	return t.DH - (tempC+273.15)*t.DS/1000.0
}

// Entropic converts a ΔG37 penalty into a purely entropic Thermo so that it
// scales with temperature the way loop penalties do.
func Entropic(dg37 float64) Thermo {
	return Thermo{DH: 0, DS: -dg37 * 1000.0 / T37}
}

// Constants are the scalar corrections of a parameter set.
type Constants struct {
	// Legacy-style initiation, applied once per duplex end by terminal pair type.
	InitGC Thermo
	InitAT Thermo
	// Revised-style initiation, applied once per duplex, plus a penalty per
	// terminal A·T pair.
	Init       Thermo
	TerminalAT Thermo
	// Symmetry correction for self-complementary duplexes.
	Symmetry Thermo

	// Salt: ΔS += SaltMono·(N−1)·ln[Na_eq]; Na_eq = Na + Divalent·√(Mg−dNTP) (mol/L).
	SaltMono float64
	Divalent float64

	// Multiloop ΔG37 = A + B·branches + C·unpaired.
	MultiA, MultiB, MultiC float64
	// Internal-loop asymmetry ΔG37 per nucleotide of |n1−n2|.
	Asymmetry float64

	// Mismatch-aware extension corrections (ΔG37).
	ConsecutiveMismatch float64 // per extra mismatch adjacent to another
	TerminalProximity5  float64 // alteration within TerminalWindow of the 5' end
	TerminalProximity3  float64 // alteration within TerminalWindow of the 3' end
	TerminalWindow      int
	MaxMismatchRun      int // longer runs are loops, not mismatches
}

// Set is an immutable, named nearest-neighbor parameter set.
type Set struct {
	name    string
	version string
	cite    string

	stacks     map[string]Thermo
	mismatches map[string]Thermo
	dangles    map[string]Thermo

	hairpin  []loopPoint
	bulge    []loopPoint
	internal []loopPoint

	c Constants
}

// Name is the short selector ("legacy", "revised").
func (s *Set) Name() string { return s.name }

// ID is the identity used in cache keys.
func (s *Set) ID() string { return s.name + "-" + s.version }

// Citation lists the literature the tables come from.
func (s *Set) Citation() string { return s.cite }

// Constants returns a copy of the scalar corrections.
func (s *Set) Constants() Constants { return s.c }

// HasDangles reports whether the set tabulates dangling ends.
func (s *Set) HasDangles() bool { return len(s.dangles) > 0 }

// NN returns the Watson–Crick stack parameters for top (5'→3') over bot (3'→5').
func (s *Set) NN(top, bot string) (Thermo, error) {
	if v, ok := lookup(s.stacks, top, bot); ok {
		return v, nil
	}
	return Thermo{}, fmt.Errorf("%w: no NN stack %s/%s in %s", ErrUnsupportedParameters, top, bot, s.ID())
}

// NNStep returns the matched-stack parameters for a 5'→3' dinucleotide.
func (s *Set) NNStep(dinuc string) (Thermo, error) {
	if len(dinuc) != 2 {
		return Thermo{}, fmt.Errorf("%w: dinucleotide %q", ErrUnsupportedParameters, dinuc)
	}
	return s.NN(dinuc, string([]byte{comp(dinuc[0]), comp(dinuc[1])}))
}

// Mismatch returns parameters for a stack containing at least one mismatched
// pair. Stacks with two mismatched pairs are only available where tabulated.
func (s *Set) Mismatch(top, bot string) (Thermo, error) {
	if v, ok := lookup(s.mismatches, top, bot); ok {
		return v, nil
	}
	return Thermo{}, fmt.Errorf("%w: no mismatch stack %s/%s in %s", ErrUnsupportedParameters, top, bot, s.ID())
}

// Stack returns NN or mismatch parameters depending on the pairs involved.
func (s *Set) Stack(top, bot string) (Thermo, error) {
	if len(top) != 2 || len(bot) != 2 {
		return Thermo{}, fmt.Errorf("%w: stack %s/%s", ErrUnsupportedParameters, top, bot)
	}
	if wc(top[0], bot[0]) && wc(top[1], bot[1]) {
		return s.NN(top, bot)
	}
	return s.Mismatch(top, bot)
}

// Dangle returns dangling-end parameters; top or bot contains one '.'.
func (s *Set) Dangle(top, bot string) (Thermo, error) {
	if v, ok := lookup(s.dangles, top, bot); ok {
		return v, nil
	}
	return Thermo{}, fmt.Errorf("%w: no dangling end %s/%s in %s", ErrUnsupportedParameters, top, bot, s.ID())
}

// HairpinLoop returns ΔG37 for a hairpin loop of n unpaired bases.
func (s *Set) HairpinLoop(n int) float64 { return loopDG(s.hairpin, n) }

// BulgeLoop returns ΔG37 for a bulge of n unpaired bases.
func (s *Set) BulgeLoop(n int) float64 { return loopDG(s.bulge, n) }

// InternalLoop returns ΔG37 for an internal loop with n1 and n2 unpaired
// bases on either side (n1+n2 >= 3), including the asymmetry penalty.
func (s *Set) InternalLoop(n1, n2 int) float64 {
	g := loopDG(s.internal, n1+n2)
	d := n1 - n2
	if d < 0 {
		d = -d
	}
	return g + s.c.Asymmetry*float64(d)
}

// Initiation returns the duplex initiation plus terminal corrections for a
// duplex whose terminal pairs are (top5, bot5) and (top3, bot3).
func (s *Set) Initiation(top5, bot5, top3, bot3 byte) Thermo {
	return s.c.Init.Add(s.EndInitiation(top5, bot5)).Add(s.EndInitiation(top3, bot3))
}

// EndInitiation is the per-end share of Initiation for terminal pair (top, bot).
func (s *Set) EndInitiation(top, bot byte) Thermo {
	if isAT(top, bot) {
		return s.c.InitAT.Add(s.c.TerminalAT)
	}
	return s.c.InitGC
}

// ClosingAT is the terminal A·T penalty for a helix end that closes a loop.
func (s *Set) ClosingAT(top, bot byte) Thermo {
	if isAT(top, bot) {
		return s.c.TerminalAT
	}
	return Thermo{}
}

// SaltEntropy returns the salt correction to ΔS for a duplex with steps
// nearest-neighbor steps (N−1 for an N-mer).
func (s *Set) SaltEntropy(steps int, naM, mgM, dntpM float64) float64 {
	return s.c.SaltMono * float64(steps) * math.Log(s.NaEquivalent(naM, mgM, dntpM))
}

// NaEquivalent folds free Mg2+ into a Na+-equivalent (mol/L).
func (s *Set) NaEquivalent(naM, mgM, dntpM float64) float64 {
	free := mgM - dntpM
	if free < 0 {
		free = 0
	}
	return naM + s.c.Divalent*math.Sqrt(free)
}

var registry = map[string]func() *Set{
	"legacy":  Legacy,
	"revised": Revised,
}

// ByName returns a registered set ("legacy" or "revised").
func ByName(name string) (*Set, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown parameter set %q (have %v)", ErrInvalidConfiguration, name, Names())
	}
	return f(), nil
}

// Names lists registered parameter sets.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ---------- helpers ----------

func lookup(m map[string]Thermo, top, bot string) (Thermo, bool) {
	if v, ok := m[top+"/"+bot]; ok {
		return v, true
	}
	v, ok := m[reverse(bot)+"/"+reverse(top)]
	return v, ok
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func comp(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return 'N'
	}
}

func wc(a, b byte) bool { return a != 'N' && comp(a) == b }

func isAT(a, b byte) bool { return (a == 'A' && b == 'T') || (a == 'T' && b == 'A') }
