// internal/cli/stats.go
package cli

import (
	"context"
	"sort"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// cacheStats is the traffic of one memo cache during a run.
type cacheStats struct {
	Name   string
	Hits   int64
	Misses int64
	Clears int64
}

// collectCacheStats sums the memo counters per cache.name attribute.
func collectCacheStats(ctx context.Context, reader *sdkmetric.ManualReader) ([]cacheStats, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	by := map[string]*cacheStats{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("cache.name")
				name := v.AsString()
				s := by[name]
				if s == nil {
					s = &cacheStats{Name: name}
					by[name] = s
				}
				switch m.Name {
				case "memo.cache.hits":
					s.Hits += dp.Value
				case "memo.cache.misses":
					s.Misses += dp.Value
				case "memo.cache.clears":
					s.Clears += dp.Value
				}
			}
		}
	}
	out := make([]cacheStats, 0, len(by))
	for _, s := range by {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
