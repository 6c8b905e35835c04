// core/score/weights.go
package score

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"primerscore/core/params"
)

// Metric names one sub-score.
type Metric string

const (
	MetricTm           Metric = "tm"
	MetricTmDiff       Metric = "tm_diff"
	MetricGC           Metric = "gc"
	MetricEndStability Metric = "end_stability"
	MetricHairpin      Metric = "hairpin"
	MetricHomodimer    Metric = "homodimer"
	MetricHeterodimer  Metric = "heterodimer"
	MetricOffTarget    Metric = "offtarget"
	MetricLength       Metric = "length"
	MetricGCClamp      Metric = "gc_clamp"
	MetricMaxRun       Metric = "max_run"
	MetricThreePrimeGC Metric = "three_prime_gc"
)

// AllMetrics lists every metric in breakdown order.
var AllMetrics = []Metric{
	MetricTm, MetricTmDiff, MetricGC, MetricEndStability,
	MetricHairpin, MetricHomodimer, MetricHeterodimer, MetricOffTarget,
	MetricLength, MetricGCClamp, MetricMaxRun, MetricThreePrimeGC,
}

func knownMetric(m Metric) bool {
	for _, k := range AllMetrics {
		if k == m {
			return true
		}
	}
	return false
}

// Weights maps metrics to non-negative weights. Build them with NewWeights
// or Preset; missing metrics weigh 0.
type Weights map[Metric]float64

// NewWeights validates raw: names must be known metrics, weights finite and
// non-negative, and the total positive.
func NewWeights(raw map[string]float64) (Weights, error) {
	w := make(Weights, len(raw))
	total := 0.0
	for name, v := range raw {
		m := Metric(name)
		if !knownMetric(m) {
			return nil, fmt.Errorf("%w: unknown metric %q", params.ErrInvalidConfiguration, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: weight for %s must be a non-negative number, got %v", params.ErrInvalidConfiguration, name, v)
		}
		w[m] = v
		total += v
	}
	if !(total > 0) {
		return nil, fmt.Errorf("%w: weights sum to zero", params.ErrInvalidConfiguration)
	}
	return w, nil
}

// Total is the sum of all weights.
func (w Weights) Total() float64 {
	t := 0.0
	for _, v := range w {
		t += v
	}
	return t
}

// Scaled returns a copy with every weight multiplied by k.
func (w Weights) Scaled(k float64) Weights {
	out := make(Weights, len(w))
	for m, v := range w {
		out[m] = v * k
	}
	return out
}

// Raw returns the weights keyed by metric name.
func (w Weights) Raw() map[string]float64 {
	out := make(map[string]float64, len(w))
	for m, v := range w {
		out[string(m)] = v
	}
	return out
}

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "default"

var presets = map[string]map[string]float64{
	"default": {
		"tm": 0.20, "tm_diff": 0.08, "gc": 0.10, "end_stability": 0.08,
		"hairpin": 0.10, "homodimer": 0.10, "heterodimer": 0.08, "offtarget": 0.06,
		"length": 0.06, "gc_clamp": 0.05, "max_run": 0.05, "three_prime_gc": 0.04,
	},
	// paired end-point PCR: partner matching and cross-dimers dominate
	"pcr": {
		"tm": 0.18, "tm_diff": 0.14, "gc": 0.08, "end_stability": 0.08,
		"hairpin": 0.08, "homodimer": 0.08, "heterodimer": 0.14, "offtarget": 0.08,
		"length": 0.04, "gc_clamp": 0.04, "max_run": 0.03, "three_prime_gc": 0.03,
	},
	// single primer, no partner
	"sequencing": {
		"tm": 0.22, "gc": 0.12, "end_stability": 0.10, "hairpin": 0.14,
		"homodimer": 0.12, "offtarget": 0.12, "length": 0.06, "gc_clamp": 0.06,
		"max_run": 0.06,
	},
	// the altered primer must anneal despite the mismatch; composition matters less
	"mutagenesis": {
		"tm": 0.30, "tm_diff": 0.10, "gc": 0.06, "end_stability": 0.12,
		"hairpin": 0.14, "homodimer": 0.10, "heterodimer": 0.06, "length": 0.04,
		"gc_clamp": 0.08,
	},
	// qPCR: tight Tm matching, no dimers, clean 3' ends
	"qpcr": {
		"tm": 0.16, "tm_diff": 0.14, "gc": 0.08, "end_stability": 0.10,
		"hairpin": 0.08, "homodimer": 0.12, "heterodimer": 0.14, "offtarget": 0.06,
		"length": 0.03, "gc_clamp": 0.02, "max_run": 0.03, "three_prime_gc": 0.04,
	},
}

// Preset returns a built-in weight preset.
func Preset(name string) (Weights, error) {
	if name == "" {
		name = DefaultPreset
	}
	raw, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q (known: %v)", params.ErrInvalidConfiguration, name, PresetNames())
	}
	return NewWeights(raw)
}

// PresetNames lists the built-in presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// presetFile is the YAML layout read by LoadPresets and written by
// ExportPresets.
type presetFile struct {
	Presets map[string]map[string]float64 `yaml:"presets"`
}

// LoadPresets reads named presets from YAML:
//
//	presets:
//	  strict:
//	    tm: 0.5
//	    hairpin: 0.5
//
// Every preset is validated with NewWeights.
func LoadPresets(r io.Reader) (map[string]Weights, error) {
	var f presetFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return map[string]Weights{}, nil
		}
		return nil, fmt.Errorf("%w: presets: %v", params.ErrInvalidConfiguration, err)
	}
	out := make(map[string]Weights, len(f.Presets))
	for name, raw := range f.Presets {
		w, err := NewWeights(raw)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[name] = w
	}
	return out, nil
}

// ExportPresets writes the named presets in the LoadPresets format.
func ExportPresets(w io.Writer, sets map[string]Weights) error {
	f := presetFile{Presets: make(map[string]map[string]float64, len(sets))}
	for name, ws := range sets {
		f.Presets[name] = ws.Raw()
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// BuiltinPresets returns every built-in preset.
func BuiltinPresets() map[string]Weights {
	out := make(map[string]Weights, len(presets))
	for _, n := range PresetNames() {
		w, _ := Preset(n)
		out[n] = w
	}
	return out
}
