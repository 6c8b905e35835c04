// core/thermo/context.go
package thermo

import (
	"sync"

	"primerscore/core/memo"
	"primerscore/core/params"
)

// Context carries the active parameter set and the memoization caches that
// every calculator reads. Hosts that need isolated evaluations with different
// sets create their own Context; Default is a shared convenience instance.
type Context struct {
	mu     sync.RWMutex
	set    *params.Set
	thermo *memo.Memo // Tm, duplex, GC, end-stability results
	fold   *memo.Memo // hairpin and dimer folds
}

type options struct {
	set         *params.Set
	thermoCache memo.Cache
	foldCache   memo.Cache
	metrics     *memo.Metrics
}

// Option configures NewContext.
type Option func(*options)

// WithParameters selects the initial parameter set (legacy by default).
func WithParameters(s *params.Set) Option { return func(o *options) { o.set = s } }

// WithCaches injects the stores; nil keeps the unbounded default.
func WithCaches(thermoCache, foldCache memo.Cache) Option {
	return func(o *options) {
		o.thermoCache = thermoCache
		o.foldCache = foldCache
	}
}

// WithMetrics counts cache hits and misses on both caches.
func WithMetrics(m *memo.Metrics) Option { return func(o *options) { o.metrics = m } }

// NewContext builds a Context with the legacy set and unbounded caches unless
// options say otherwise.
func NewContext(opts ...Option) *Context {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.set == nil {
		o.set = params.Legacy()
	}
	if o.thermoCache == nil {
		o.thermoCache = memo.NewMap()
	}
	if o.foldCache == nil {
		o.foldCache = memo.NewMap()
	}
	return &Context{
		set:    o.set,
		thermo: memo.New(memo.Instrument(o.thermoCache, "thermo", o.metrics)),
		fold:   memo.New(memo.Instrument(o.foldCache, "fold", o.metrics)),
	}
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-shared Context.
func Default() *Context {
	defaultOnce.Do(func() { defaultCtx = NewContext() })
	return defaultCtx
}

// UseRevisedParameters switches the shared Context; see Context.UseRevisedParameters.
func UseRevisedParameters(on bool) bool { return Default().UseRevisedParameters(on) }

// Params returns the active parameter set.
func (c *Context) Params() *params.Set {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set
}

// UseParameters makes s the active set. It is idempotent: selecting the set
// already active is a no-op and keeps the caches. A real switch clears both
// caches and returns true. Callers must not switch while other goroutines are
// computing on this Context.
func (c *Context) UseParameters(s *params.Set) bool {
	if s == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set.ID() == s.ID() {
		return false
	}
	c.set = s
	c.thermo.Clear()
	c.fold.Clear()
	return true
}

// UseRevisedParameters selects the revised set when on, the legacy set otherwise.
func (c *Context) UseRevisedParameters(on bool) bool {
	if on {
		return c.UseParameters(params.Revised())
	}
	return c.UseParameters(params.Legacy())
}

// ClearCaches drops every memoized result. Long-lived hosts with unbounded
// input diversity call this periodically or inject an LRU instead.
func (c *Context) ClearCaches() {
	c.thermo.Clear()
	c.fold.Clear()
}

// ThermoCache exposes the Tm/duplex/GC memo.
func (c *Context) ThermoCache() *memo.Memo { return c.thermo }

// FoldCache exposes the folding memo to the fold engine.
func (c *Context) FoldCache() *memo.Memo { return c.fold }
