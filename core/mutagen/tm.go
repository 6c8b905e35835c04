// core/mutagen/tm.go
package mutagen

import (
	"primerscore/core/fold"
	"primerscore/core/thermo"
)

// Tm is the mismatch-aware melting temperature of the altered primer on its
// template. Substituted bases are priced with mismatch stacks, inserted or
// deleted bases as bulges; alterations within the terminal window and
// adjacent mismatches are penalized. More than three adjacent mismatches is
// an UnsupportedParameters error.
func Tm(ctx *thermo.Context, template string, a Alteration, cond thermo.Conditions) (thermo.Result, error) {
	if ctx == nil {
		ctx = thermo.Default()
	}
	top, bot, err := Alignment(template, a)
	if err != nil {
		return thermo.Result{Err: err}, err
	}
	return ctx.DuplexTm(top, bot, cond)
}

// Fold returns the hairpin of the altered primer.
func Fold(e *fold.Engine, template string, a Alteration, cond thermo.Conditions) (fold.Result, error) {
	if e == nil {
		e = fold.New(nil)
	}
	p, err := Apply(template, a)
	if err != nil {
		return fold.Result{}, err
	}
	return e.Hairpin(p, cond)
}

// Evaluation gathers the figures of one altered primer.
type Evaluation struct {
	Alteration Alteration
	Primer     string
	Tm         thermo.Result
	MatchedTm  float64 // Tm of the unaltered template primer
	Hairpin    fold.Result
	GQuad      GQuad
}

// Evaluate computes Tm, matched Tm, hairpin and G-quadruplex risk.
func Evaluate(e *fold.Engine, template string, a Alteration, cond thermo.Conditions) (Evaluation, error) {
	if e == nil {
		e = fold.New(nil)
	}
	ctx := e.Context()
	p, err := Apply(template, a)
	if err != nil {
		return Evaluation{}, err
	}
	tm, err := Tm(ctx, template, a, cond)
	if err != nil {
		return Evaluation{}, err
	}
	matched, err := ctx.Tm(template, cond)
	if err != nil {
		return Evaluation{}, err
	}
	hp, err := e.Hairpin(p, cond)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		Alteration: a,
		Primer:     p,
		Tm:         tm,
		MatchedTm:  matched.Tm,
		Hairpin:    hp,
		GQuad:      GQuadruplexRisk(p),
	}, nil
}
