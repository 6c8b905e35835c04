package score

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerscore/core/dimer"
	"primerscore/core/params"
	"primerscore/core/thermo"
)

const scenarioPrimer = "ATGCGTACGTAGCTAGCTAGC"

// ideal returns a bundle sitting at every curve's optimum.
func ideal() Metrics {
	return Metrics{
		Tm: 60, GC: 50, EndStability: -2, Hairpin: 0, Homodimer: 0,
		Length: 20, GCClamp: true, MaxRun: 2, ThreePrimeGC: 2,
	}
}

func TestCurve_PeakAndMonotone(t *testing.T) {
	c := Curve{Ideal: 60, Tolerance: 3, RiseSteep: 1.5, FallSteep: 0.5}
	assert.InDelta(t, 1.0, c.Eval(60), 1e-12)

	prev := 1.0
	for x := 60.0; x <= 100; x += 0.5 {
		v := c.Eval(x)
		assert.LessOrEqual(t, v, prev+1e-12)
		assert.GreaterOrEqual(t, v, 0.0)
		prev = v
	}
	prev = 1.0
	for x := 60.0; x >= 20; x -= 0.5 {
		v := c.Eval(x)
		assert.LessOrEqual(t, v, prev+1e-12)
		prev = v
	}
	// steeper side falls faster
	assert.Less(t, c.Eval(55), c.Eval(65))
	assert.InDelta(t, 0, c.Eval(math.Inf(1)), 1e-12)
	assert.Zero(t, c.Eval(math.NaN()))
}

func TestCurve_ZeroSteepnessIsFlat(t *testing.T) {
	c := Curve{Ideal: 0, Tolerance: 2, RiseSteep: 1.5}
	assert.Equal(t, 1.0, c.Eval(5))
	assert.Equal(t, 1.0, c.Eval(0))
	assert.Less(t, c.Eval(-6), 0.1)
}

func TestStepAndCappedPenalty(t *testing.T) {
	assert.Equal(t, 1.0, Step(true, 0.4))
	assert.Equal(t, 0.4, Step(false, 0.4))
	assert.Equal(t, 0.0, Step(false, -3))

	assert.Equal(t, 1.0, CappedPenalty(3, 4, 0.25))
	assert.Equal(t, 0.75, CappedPenalty(5, 4, 0.25))
	assert.Equal(t, 0.0, CappedPenalty(40, 4, 0.25))
	assert.Equal(t, 0.0, CappedPenalty(math.NaN(), 4, 0.25))
}

func TestClassify_Bands(t *testing.T) {
	assert.Equal(t, Excellent, Classify(1))
	assert.Equal(t, Excellent, Classify(0.85))
	assert.Equal(t, Good, Classify(0.8499))
	assert.Equal(t, Good, Classify(0.70))
	assert.Equal(t, Acceptable, Classify(0.5))
	assert.Equal(t, Poor, Classify(0.4999))
	assert.Equal(t, Poor, Classify(0))
	assert.True(t, Excellent.AtLeast(Good))
	assert.True(t, Good.AtLeast(Good))
	assert.False(t, Acceptable.AtLeast(Good))
}

func TestScore_IdealBundleIsExcellent(t *testing.T) {
	w, err := Preset(DefaultPreset)
	require.NoError(t, err)
	c := Score(ideal(), w)
	assert.InDelta(t, 1.0, c.Score, 1e-9)
	assert.Equal(t, Excellent, c.Class)
}

func TestScore_InvariantUnderWeightScaling(t *testing.T) {
	m := ideal()
	m.Tm = 52
	m.Hairpin = -3.5
	m.TmDiff = Float(4)
	for _, name := range PresetNames() {
		w, err := Preset(name)
		require.NoError(t, err)
		base := Score(m, w)
		for _, k := range []float64{0.001, 3, 1000} {
			assert.InDelta(t, base.Score, Score(m, w.Scaled(k)).Score, 1e-12, "%s x%v", name, k)
		}
	}
}

func TestScore_BoundedAndTotal(t *testing.T) {
	w, _ := Preset("pcr")
	bad := Metrics{
		Tm: math.NaN(), GC: math.Inf(1), EndStability: math.Inf(-1),
		Hairpin: -50, Homodimer: -80, Heterodimer: Float(math.NaN()),
		OffTarget: Float(1e9), Length: 0, MaxRun: 40, ThreePrimeGC: 5,
	}
	c := Score(bad, w)
	assert.GreaterOrEqual(t, c.Score, 0.0)
	assert.LessOrEqual(t, c.Score, 1.0)
	assert.Equal(t, Poor, c.Class)

	// weights on absent metrics only: nothing to score
	c = Score(ideal(), Weights{MetricHeterodimer: 1})
	assert.Zero(t, c.Score)

	// negative weights count as zero rather than failing
	c = Score(ideal(), Weights{MetricTm: 1, MetricGC: -5})
	assert.InDelta(t, 1.0, c.Score, 1e-9)
}

func TestScore_AbsentOptionalMetricsRenormalize(t *testing.T) {
	w, _ := Preset(DefaultPreset)
	c := Score(ideal(), w)
	sum := 0.0
	for _, p := range c.Breakdown {
		assert.NotEqual(t, MetricHeterodimer, p.Metric)
		assert.NotEqual(t, MetricTmDiff, p.Metric)
		sum += p.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	m := ideal()
	m.Heterodimer = Float(-12)
	with := Score(m, w)
	assert.Less(t, with.Score, c.Score)
	assert.Len(t, with.Breakdown, len(c.Breakdown)+1)
}

func TestScore_PenalizesEachRisk(t *testing.T) {
	w, _ := Preset(DefaultPreset)
	base := Score(ideal(), w).Score
	mods := map[string]func(*Metrics){
		"tm":        func(m *Metrics) { m.Tm = 48 },
		"gc":        func(m *Metrics) { m.GC = 80 },
		"hairpin":   func(m *Metrics) { m.Hairpin = -6 },
		"dimer":     func(m *Metrics) { m.Homodimer = -10 },
		"clamp":     func(m *Metrics) { m.GCClamp = false },
		"run":       func(m *Metrics) { m.MaxRun = 7 },
		"3'gc":      func(m *Metrics) { m.ThreePrimeGC = 5 },
		"length":    func(m *Metrics) { m.Length = 30 },
		"offtarget": func(m *Metrics) { m.OffTarget = Float(2) },
	}
	for name, mod := range mods {
		m := ideal()
		mod(&m)
		assert.Less(t, Score(m, w).Score, base, name)
	}
}

func TestNewWeights_Validation(t *testing.T) {
	_, err := NewWeights(map[string]float64{"tm": -1})
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
	_, err = NewWeights(map[string]float64{"tm": 0, "gc": 0})
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
	_, err = NewWeights(map[string]float64{})
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
	_, err = NewWeights(map[string]float64{"colour": 1})
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
	_, err = NewWeights(map[string]float64{"tm": math.NaN()})
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)

	w, err := NewWeights(map[string]float64{"tm": 2, "hairpin": 1})
	require.NoError(t, err)
	assert.Equal(t, 3.0, w.Total())
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"default", "mutagenesis", "pcr", "qpcr", "sequencing"}, PresetNames())
	for _, n := range PresetNames() {
		w, err := Preset(n)
		require.NoError(t, err, n)
		assert.InDelta(t, 1.0, w.Total(), 1e-9, n)
	}
	d, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, BuiltinPresets()[DefaultPreset], d)

	_, err = Preset("nope")
	assert.True(t, errors.Is(err, params.ErrInvalidConfiguration))
}

func TestLoadAndExportPresets(t *testing.T) {
	in := `
presets:
  strict:
    tm: 0.5
    hairpin: 0.25
    homodimer: 0.25
`
	got, err := LoadPresets(strings.NewReader(in))
	require.NoError(t, err)
	require.Contains(t, got, "strict")
	assert.Equal(t, 0.5, got["strict"][MetricTm])

	var sb strings.Builder
	require.NoError(t, ExportPresets(&sb, got))
	back, err := LoadPresets(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, got, back)

	_, err = LoadPresets(strings.NewReader("presets:\n  bad:\n    tm: -1\n"))
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)
	_, err = LoadPresets(strings.NewReader("presets: [1, 2"))
	assert.ErrorIs(t, err, params.ErrInvalidConfiguration)

	empty, err := LoadPresets(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEndToEnd_ScenarioPrimer(t *testing.T) {
	ctx := thermo.NewContext()
	m, err := MetricsFor(ctx, thermo.DefaultConditions(), Input{Primer: scenarioPrimer})
	require.NoError(t, err)
	assert.Equal(t, 21, m.Length)
	assert.GreaterOrEqual(t, m.Tm, 55.0)
	assert.LessOrEqual(t, m.Tm, 65.0)
	assert.InDelta(t, 52.38, m.GC, 0.01)
	assert.InDelta(t, -2.10, m.EndStability, 0.02)
	assert.Zero(t, m.Hairpin)
	assert.True(t, m.GCClamp)
	assert.Equal(t, 3, m.ThreePrimeGC)
	assert.Nil(t, m.TmDiff)
	assert.Nil(t, m.OffTarget)

	w, err := Preset(DefaultPreset)
	require.NoError(t, err)
	assert.True(t, Score(m, w).Class.AtLeast(Good))

	// without the self-dimer the primer has no structural risk at all
	m.Homodimer = 0
	c := Score(m, w)
	assert.True(t, c.Class.AtLeast(Good))
	assert.InDelta(t, 0.945, c.Score, 0.005)
}

func TestMetricsFor_PartnerAndHits(t *testing.T) {
	ctx := thermo.NewContext()
	hits := []dimer.Hit{
		{Target: "ref", Position: 10, Strand: dimer.Plus},
		{Target: "ref", Position: 400, Strand: dimer.Minus, Mismatches: 1},
	}
	m, err := MetricsFor(ctx, thermo.DefaultConditions(), Input{
		Primer:   scenarioPrimer,
		Partner:  "GCTAGCTAGCTACGTACGCAT",
		Hits:     hits,
		Intended: []dimer.Site{{Target: "ref", Position: 10, Strand: dimer.Plus}},
	})
	require.NoError(t, err)
	require.NotNil(t, m.TmDiff)
	require.NotNil(t, m.Heterodimer)
	require.NotNil(t, m.OffTarget)
	assert.Less(t, *m.Heterodimer, -15.0)
	assert.Equal(t, 0.25, *m.OffTarget)

	clean, err := MetricsFor(ctx, thermo.DefaultConditions(), Input{Primer: scenarioPrimer, Hits: []dimer.Hit{}})
	require.NoError(t, err)
	require.NotNil(t, clean.OffTarget)
	assert.Zero(t, *clean.OffTarget)

	_, err = MetricsFor(ctx, thermo.DefaultConditions(), Input{Primer: scenarioPrimer, Partner: "ACGN"})
	assert.Error(t, err)
	_, err = MetricsFor(nil, thermo.DefaultConditions(), Input{Primer: "AC"})
	assert.Error(t, err)
}
