// core/score/curve.go
package score

import "math"

// Curve is a piecewise-logistic response. Within Tolerance of Ideal the
// score stays near 1; beyond it falls off as a logistic whose steepness is
// RiseSteep below Ideal and FallSteep above it. A zero steepness makes that
// side flat at 1, which gives one-sided curves for ΔG metrics.
type Curve struct {
	Ideal     float64 `yaml:"ideal" json:"ideal"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	RiseSteep float64 `yaml:"rise" json:"rise"`
	FallSteep float64 `yaml:"fall" json:"fall"`
}

// Eval maps x to [0,1]. It is 1 at Ideal and non-increasing with distance
// from it on either side. NaN scores 0.
func (c Curve) Eval(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	d, k := x-c.Ideal, c.FallSteep
	if d < 0 {
		d, k = -d, c.RiseSteep
	}
	if k <= 0 || math.IsNaN(k) {
		return 1
	}
	tol := math.Max(c.Tolerance, 0)
	return clamp01(logistic(k*(d-tol)) / logistic(-k*tol))
}

func logistic(z float64) float64 { return 1 / (1 + math.Exp(z)) }

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Step scores a binary property: 1 when ok, otherwise fail (clamped).
func Step(ok bool, fail float64) float64 {
	if ok {
		return 1
	}
	return clamp01(fail)
}

// CappedPenalty is 1 up to allowed, then loses per for each unit above,
// never below 0.
func CappedPenalty(value, allowed, per float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	over := value - allowed
	if over <= 0 {
		return 1
	}
	return clamp01(1 - per*over)
}
