// core/score/score.go
// Package score fuses physical predictions and compositional heuristics into
// one primer quality score in [0,1] with a qualitative class.
package score

import "math"

// Metrics is the raw metric bundle of one primer (or a primer with its
// partner). Optional metrics are pointers; nil means not measured, and the
// metric is left out of the composite with weights renormalized.
type Metrics struct {
	Tm           float64  // °C
	TmDiff       *float64 // |Tm - partner Tm|, °C
	GC           float64  // percent
	EndStability float64  // ΔG of the 3' pentamer duplex, kcal/mol
	Hairpin      float64  // ΔG, kcal/mol; 0 when nothing folds
	Homodimer    float64  // ΔG, kcal/mol
	Heterodimer  *float64 // ΔG against the partner, kcal/mol
	OffTarget    *float64 // specificity penalty
	Length       int
	GCClamp      bool
	MaxRun       int
	ThreePrimeGC int // G/C among the last five bases
}

// Float is a helper for filling optional metrics.
func Float(v float64) *float64 { return &v }

// Curves holds the response curve of each continuous metric.
type Curves map[Metric]Curve

// DefaultCurves returns the calibrated response curves.
func DefaultCurves() Curves {
	return Curves{
		MetricTm:           {Ideal: 60, Tolerance: 3, RiseSteep: 1.5, FallSteep: 1.5},
		MetricTmDiff:       {Ideal: 0, Tolerance: 2, FallSteep: 1.5},
		MetricGC:           {Ideal: 50, Tolerance: 10, RiseSteep: 0.4, FallSteep: 0.4},
		MetricEndStability: {Ideal: -2, Tolerance: 1.5, RiseSteep: 1.2, FallSteep: 1.2},
		MetricHairpin:      {Ideal: 0, Tolerance: 2, RiseSteep: 1.5},
		MetricHomodimer:    {Ideal: 0, Tolerance: 5, RiseSteep: 1.2},
		MetricHeterodimer:  {Ideal: 0, Tolerance: 5, RiseSteep: 1.2},
		MetricOffTarget:    {Ideal: 0, Tolerance: 0.5, FallSteep: 3},
		MetricLength:       {Ideal: 20, Tolerance: 3, RiseSteep: 1.5, FallSteep: 1.5},
	}
}

// Class is a qualitative score band.
type Class string

const (
	Excellent  Class = "excellent"
	Good       Class = "good"
	Acceptable Class = "acceptable"
	Poor       Class = "poor"
)

// Band lower bounds.
const (
	ExcellentMin  = 0.85
	GoodMin       = 0.70
	AcceptableMin = 0.50
)

// Classify maps a composite score to its band.
func Classify(s float64) Class {
	switch {
	case s >= ExcellentMin:
		return Excellent
	case s >= GoodMin:
		return Good
	case s >= AcceptableMin:
		return Acceptable
	default:
		return Poor
	}
}

// AtLeast reports whether c is the same or a better band than o.
func (c Class) AtLeast(o Class) bool { return c.rank() >= o.rank() }

func (c Class) rank() int {
	switch c {
	case Excellent:
		return 3
	case Good:
		return 2
	case Acceptable:
		return 1
	}
	return 0
}

// Component is one line of a composite breakdown.
type Component struct {
	Metric       Metric  `json:"metric"`
	Value        float64 `json:"value"`
	Sub          float64 `json:"sub"`
	Weight       float64 `json:"weight"` // normalized over the metrics present
	Contribution float64 `json:"contribution"`
}

// Composite is the fused score.
type Composite struct {
	Score     float64     `json:"score"`
	Class     Class       `json:"class"`
	Breakdown []Component `json:"breakdown"`
}

// Score combines m under w with the default curves. It is a pure function of
// its inputs and has no error path: negative or non-finite weights count as
// 0, and a bundle whose present metrics all weigh 0 scores 0.
func Score(m Metrics, w Weights) Composite {
	return ScoreWith(m, w, DefaultCurves())
}

// ScoreWith is Score with explicit curves; metrics missing from curves use
// the default curve.
func ScoreWith(m Metrics, w Weights, curves Curves) Composite {
	def := DefaultCurves()
	curve := func(k Metric) Curve {
		if c, ok := curves[k]; ok {
			return c
		}
		return def[k]
	}

	var parts []Component
	add := func(k Metric, v, sub float64) {
		parts = append(parts, Component{Metric: k, Value: v, Sub: clamp01(sub)})
	}
	add(MetricTm, m.Tm, curve(MetricTm).Eval(m.Tm))
	if m.TmDiff != nil {
		d := math.Abs(*m.TmDiff)
		add(MetricTmDiff, d, curve(MetricTmDiff).Eval(d))
	}
	add(MetricGC, m.GC, curve(MetricGC).Eval(m.GC))
	add(MetricEndStability, m.EndStability, curve(MetricEndStability).Eval(m.EndStability))
	add(MetricHairpin, m.Hairpin, curve(MetricHairpin).Eval(m.Hairpin))
	add(MetricHomodimer, m.Homodimer, curve(MetricHomodimer).Eval(m.Homodimer))
	if m.Heterodimer != nil {
		add(MetricHeterodimer, *m.Heterodimer, curve(MetricHeterodimer).Eval(*m.Heterodimer))
	}
	if m.OffTarget != nil {
		add(MetricOffTarget, *m.OffTarget, curve(MetricOffTarget).Eval(*m.OffTarget))
	}
	add(MetricLength, float64(m.Length), curve(MetricLength).Eval(float64(m.Length)))
	add(MetricGCClamp, boolValue(m.GCClamp), Step(m.GCClamp, 0.4))
	add(MetricMaxRun, float64(m.MaxRun), CappedPenalty(float64(m.MaxRun), 4, 0.25))
	add(MetricThreePrimeGC, float64(m.ThreePrimeGC), threePrimeGC(m.ThreePrimeGC))

	total := 0.0
	for i := range parts {
		parts[i].Weight = weightOf(w, parts[i].Metric)
		total += parts[i].Weight
	}
	s := 0.0
	for i := range parts {
		if total > 0 {
			parts[i].Weight /= total
		} else {
			parts[i].Weight = 0
		}
		parts[i].Contribution = parts[i].Weight * parts[i].Sub
		s += parts[i].Contribution
	}
	s = clamp01(s)
	return Composite{Score: s, Class: Classify(s), Breakdown: parts}
}

func weightOf(w Weights, k Metric) float64 {
	v := w[k]
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// threePrimeGC favours one to three G/C in the last five bases; none binds
// weakly, more than three promotes mispriming.
func threePrimeGC(n int) float64 {
	if n <= 0 {
		return 0.5
	}
	return CappedPenalty(float64(n), 3, 0.35)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
