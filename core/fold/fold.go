// core/fold/fold.go
// Package fold predicts minimum-free-energy secondary structures: hairpins of
// a single strand and duplexes between two strands. Both are explicit
// dynamic-programming tables filled bottom-up over substrings (hairpin) or
// position pairs (dimer), with energies from the active parameter set.
package fold

import (
	"fmt"
	"strconv"

	"primerscore/core/memo"
	"primerscore/core/oligo"
	"primerscore/core/thermo"
)

const (
	// MinLoop is the smallest hairpin loop; bases closer than this never pair.
	MinLoop = 3
	// MaxLoop bounds bulge and internal loop size.
	MaxLoop = 30
	// TieEpsilon is the ΔG tolerance (kcal/mol) under which two candidates
	// count as equal and the one with fewer paired bases wins.
	TieEpsilon = 1e-6
	// NoStructureThreshold: a best ΔG above this (kcal/mol) is reported as no
	// significant structure.
	NoStructureThreshold = -1.0
)

// Mode tells which recurrence produced a Result.
type Mode string

const (
	ModeHairpin  Mode = "hairpin"
	ModeDimer    Mode = "dimer"
	ModeEndDimer Mode = "end-dimer"
)

// Result is the minimum-free-energy structure found.
type Result struct {
	Mode      Mode
	DG        float64 // kcal/mol at the requested temperature; 0 when nothing pairs
	Structure Structure
	Exists    bool // DG <= NoStructureThreshold
	ParamID   string
}

// PairCount is the number of base pairs in the structure.
func (r Result) PairCount() int { return len(r.Structure.Pairs) }

// Engine folds sequences against the parameter set and caches of a
// thermo.Context.
type Engine struct {
	ctx *thermo.Context
}

// New binds an Engine to ctx; nil uses thermo.Default().
func New(ctx *thermo.Context) *Engine {
	if ctx == nil {
		ctx = thermo.Default()
	}
	return &Engine{ctx: ctx}
}

// Context returns the bound evaluation context.
func (e *Engine) Context() *thermo.Context { return e.ctx }

// Hairpin returns the MFE intramolecular structure of seq.
func (e *Engine) Hairpin(seq string, cond thermo.Conditions) (Result, error) {
	s, err := oligo.Validate(seq)
	if err != nil {
		return Result{}, err
	}
	set := e.ctx.Params()
	if err := cond.ValidateFor(set); err != nil {
		return Result{}, err
	}
	k := memo.NewKey(memo.KindHairpin, set.ID(), cond.Key()+limitsKey, s)
	return memo.Get(e.ctx.FoldCache(), k, func() (Result, error) {
		m := newModel(set, cond)
		dg, st := foldHairpin(m, s)
		return finish(ModeHairpin, dg, st, set.ID()), nil
	})
}

// Dimer returns the MFE duplex between a and b (both 5'→3'). b is read
// 3'→5' against a, i.e. a pairs with the reverse complement target of b.
// When a == b the homodimer symmetry correction applies.
func (e *Engine) Dimer(a, b string, cond thermo.Conditions) (Result, error) {
	return e.dimer(ModeDimer, a, b, cond)
}

// EndDimer is Dimer restricted to duplexes in which the 3'-terminal base of a
// is paired, the arrangement a polymerase can extend.
func (e *Engine) EndDimer(a, b string, cond thermo.Conditions) (Result, error) {
	return e.dimer(ModeEndDimer, a, b, cond)
}

func (e *Engine) dimer(mode Mode, a, b string, cond thermo.Conditions) (Result, error) {
	sa, err := oligo.Validate(a)
	if err != nil {
		return Result{}, fmt.Errorf("first strand: %w", err)
	}
	sb, err := oligo.Validate(b)
	if err != nil {
		return Result{}, fmt.Errorf("second strand: %w", err)
	}
	set := e.ctx.Params()
	if err := cond.ValidateFor(set); err != nil {
		return Result{}, err
	}
	k := memo.NewKey(memo.KindDimer, set.ID(), cond.Key()+limitsKey+";mode="+string(mode), sa, sb)
	return memo.Get(e.ctx.FoldCache(), k, func() (Result, error) {
		m := newModel(set, cond)
		dg, st := foldDimer(m, sa, sb, mode == ModeEndDimer)
		return finish(mode, dg, st, set.ID()), nil
	})
}

var limitsKey = ";minloop=" + strconv.Itoa(MinLoop) + ";maxloop=" + strconv.Itoa(MaxLoop)

func finish(mode Mode, dg float64, st Structure, paramID string) Result {
	return Result{
		Mode:      mode,
		DG:        dg,
		Structure: st,
		Exists:    dg <= NoStructureThreshold,
		ParamID:   paramID,
	}
}
