// core/memo/metrics.go
package memo

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics counts cache traffic. One Metrics may back several caches; each is
// distinguished by the cache.name attribute.
type Metrics struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
	clears metric.Int64Counter
}

// NewMetrics creates the instruments on meter. A nil meter uses the global
// provider, which is a no-op until the host installs one.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter("primerscore/memo")
	}
	hits, err := meter.Int64Counter(
		"memo.cache.hits",
		metric.WithDescription("Cache lookups answered from the store"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64Counter(
		"memo.cache.misses",
		metric.WithDescription("Cache lookups that required computation"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}
	clears, err := meter.Int64Counter(
		"memo.cache.clears",
		metric.WithDescription("Wholesale cache invalidations"),
		metric.WithUnit("{clear}"),
	)
	if err != nil {
		return nil, err
	}
	return &Metrics{hits: hits, misses: misses, clears: clears}, nil
}

// Instrument wraps c so that every Get and Clear is counted under name.
func Instrument(c Cache, name string, m *Metrics) Cache {
	if m == nil {
		return c
	}
	return &instrumented{Cache: c, m: m, name: name}
}

type instrumented struct {
	Cache
	m    *Metrics
	name string
}

func (c *instrumented) Get(k Key) (any, bool) {
	v, ok := c.Cache.Get(k)
	opt := metric.WithAttributes(
		attribute.String("cache.name", c.name),
		attribute.String("memo.kind", string(k.Kind)),
	)
	if ok {
		c.m.hits.Add(context.Background(), 1, opt)
	} else {
		c.m.misses.Add(context.Background(), 1, opt)
	}
	return v, ok
}

func (c *instrumented) Clear() {
	c.Cache.Clear()
	c.m.clears.Add(context.Background(), 1, metric.WithAttributes(attribute.String("cache.name", c.name)))
}
