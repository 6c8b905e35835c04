// core/dimer/dimer.go
// Package dimer applies the folding engine to primer self- and cross-pairs,
// grades the result by severity and turns off-target hits into a
// specificity penalty.
package dimer

import (
	"primerscore/core/fold"
	"primerscore/core/thermo"
)

// Severity is an ordered dimer risk level.
type Severity int

const (
	None Severity = iota
	Mild
	Moderate
	Severe
)

var severityNames = [...]string{"none", "mild", "moderate", "severe"}

func (s Severity) String() string {
	if s < None || s > Severe {
		return "unknown"
	}
	return severityNames[s]
}

// ΔG boundaries in kcal/mol (IDT OligoAnalyzer guidance).
const (
	MildDG     = -5.0
	ModerateDG = -6.0
	SevereDG   = -9.0
)

// Classify maps a dimer ΔG to a severity. It is total over float64 and
// monotone: a more negative ΔG never yields a lower severity. NaN is None.
func Classify(dg float64) Severity {
	switch {
	case dg <= SevereDG:
		return Severe
	case dg <= ModerateDG:
		return Moderate
	case dg <= MildDG:
		return Mild
	default:
		return None
	}
}

// Report is a fold result with its severity.
type Report struct {
	Fold     fold.Result
	Severity Severity
}

// Evaluator runs dimer checks through a fold.Engine.
type Evaluator struct {
	engine *fold.Engine
}

// NewEvaluator wraps e; nil uses an engine on thermo.Default().
func NewEvaluator(e *fold.Engine) *Evaluator {
	if e == nil {
		e = fold.New(nil)
	}
	return &Evaluator{engine: e}
}

// Engine returns the wrapped folding engine.
func (ev *Evaluator) Engine() *fold.Engine { return ev.engine }

// Homodimer folds seq against itself.
func (ev *Evaluator) Homodimer(seq string, cond thermo.Conditions) (Report, error) {
	return report(ev.engine.Dimer(seq, seq, cond))
}

// Heterodimer folds a against b, e.g. a forward/reverse primer pair.
func (ev *Evaluator) Heterodimer(a, b string, cond thermo.Conditions) (Report, error) {
	return report(ev.engine.Dimer(a, b, cond))
}

// EndDimer is the 3'-anchored duplex of a against b: only structures that
// pair a's 3'-terminal base, which a polymerase could extend.
func (ev *Evaluator) EndDimer(a, b string, cond thermo.Conditions) (Report, error) {
	return report(ev.engine.EndDimer(a, b, cond))
}

func report(r fold.Result, err error) (Report, error) {
	if err != nil {
		return Report{}, err
	}
	return Report{Fold: r, Severity: Classify(r.DG)}, nil
}
