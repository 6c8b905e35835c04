// core/score/metrics.go
package score

import (
	"fmt"
	"math"

	"primerscore/core/dimer"
	"primerscore/core/fold"
	"primerscore/core/oligo"
	"primerscore/core/thermo"
)

// Input describes what MetricsFor measures. Partner and Hits are optional.
type Input struct {
	Primer   string
	Partner  string
	Hits     []dimer.Hit
	Intended []dimer.Site
}

// MetricsFor gathers the metric bundle of in.Primer from the engine bound to
// ctx (thermo.Default() when nil). TmDiff and Heterodimer are filled when a
// partner is given, OffTarget when hits are (an empty non-nil slice counts as
// a clean search).
func MetricsFor(ctx *thermo.Context, cond thermo.Conditions, in Input) (Metrics, error) {
	if ctx == nil {
		ctx = thermo.Default()
	}
	p, err := oligo.Validate(in.Primer)
	if err != nil {
		return Metrics{}, err
	}
	tm, err := ctx.Tm(p, cond)
	if err != nil {
		return Metrics{}, err
	}
	gc, err := ctx.GC(p)
	if err != nil {
		return Metrics{}, err
	}
	end, err := ctx.EndStability(p, thermo.DefaultEndLength, cond)
	if err != nil {
		return Metrics{}, err
	}
	ev := dimer.NewEvaluator(fold.New(ctx))
	hp, err := ev.Engine().Hairpin(p, cond)
	if err != nil {
		return Metrics{}, err
	}
	homo, err := ev.Homodimer(p, cond)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		Tm:           tm.Tm,
		GC:           gc * 100,
		EndStability: end,
		Hairpin:      hp.DG,
		Homodimer:    homo.Fold.DG,
		Length:       len(p),
		GCClamp:      oligo.HasGCClamp(p),
		MaxRun:       oligo.MaxRun(p),
		ThreePrimeGC: oligo.ThreePrimeGC(p, 5),
	}

	if in.Partner != "" {
		q, err := oligo.Validate(in.Partner)
		if err != nil {
			return Metrics{}, fmt.Errorf("partner: %w", err)
		}
		qtm, err := ctx.Tm(q, cond)
		if err != nil {
			return Metrics{}, fmt.Errorf("partner: %w", err)
		}
		het, err := ev.Heterodimer(p, q, cond)
		if err != nil {
			return Metrics{}, err
		}
		m.TmDiff = Float(math.Abs(tm.Tm - qtm.Tm))
		m.Heterodimer = Float(het.Fold.DG)
	}

	if in.Hits != nil {
		res, err := dimer.Specificity(in.Hits, len(p), in.Intended...)
		if err != nil {
			return Metrics{}, err
		}
		m.OffTarget = Float(res.Penalty)
	}
	return m, nil
}
