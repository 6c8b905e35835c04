// core/dimer/specificity.go
package dimer

import (
	"context"
	"fmt"

	"primerscore/core/params"
)

// Strand of a binding site relative to the searched reference.
type Strand string

const (
	Plus  Strand = "+"
	Minus Strand = "-"
)

// Hit is one candidate binding site reported by an off-target search.
type Hit struct {
	Target     string // reference record id; may be empty
	Position   int    // 0-based start on the reference
	Strand     Strand
	Mismatches int
}

// Site identifies a binding position; used to exclude the intended target.
type Site struct {
	Target   string
	Position int
	Strand   Strand
}

func (h Hit) site() Site { return Site{Target: h.Target, Position: h.Position, Strand: h.Strand} }

// HitSource finds candidate binding sites of a primer. The engine only
// consumes hits; searching is the source's job.
type HitSource interface {
	Hits(ctx context.Context, primer string) ([]Hit, error)
}

// MaxMismatches: hits with this many mismatches or more carry no weight.
const MaxMismatches = 4

// Weight of a single hit with mm mismatches: 1/(1+mm)^2, 0 from
// MaxMismatches on.
func Weight(mm int) float64 {
	if mm < 0 || mm >= MaxMismatches {
		return 0
	}
	d := float64(1 + mm)
	return 1 / (d * d)
}

// SpecificityResult summarizes off-target binding.
type SpecificityResult struct {
	Penalty    float64            // Σ weight over unintended hits
	Counted    int                // unintended hits below MaxMismatches
	ByMismatch [MaxMismatches]int // counts of unintended hits per mismatch class
	Intended   int                // hits matching an intended site
	Ignored    int                // hits at or above MaxMismatches
}

// Specificity converts hits into a penalty. Hits at intended sites are
// excluded. A negative mismatch count, or one exceeding primerLen, is an
// InvalidConfiguration.
func Specificity(hits []Hit, primerLen int, intended ...Site) (SpecificityResult, error) {
	var res SpecificityResult
	skip := make(map[Site]struct{}, len(intended))
	for _, s := range intended {
		skip[s] = struct{}{}
	}
	for i, h := range hits {
		if h.Mismatches < 0 || (primerLen > 0 && h.Mismatches > primerLen) {
			return SpecificityResult{}, fmt.Errorf("%w: hit %d has %d mismatches for a %d nt primer",
				params.ErrInvalidConfiguration, i, h.Mismatches, primerLen)
		}
		if _, ok := skip[h.site()]; ok {
			res.Intended++
			continue
		}
		if h.Mismatches >= MaxMismatches {
			res.Ignored++
			continue
		}
		res.Counted++
		res.ByMismatch[h.Mismatches]++
		res.Penalty += Weight(h.Mismatches)
	}
	return res, nil
}
