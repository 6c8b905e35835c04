// core/memo/memo.go
// Package memo is the memoization layer shared by the thermodynamic and
// folding calculators. A Cache is injectable: callers pick an unbounded map
// (the default) or a bounded LRU, and may wrap either with metrics.
package memo

import (
	"strings"

	"golang.org/x/sync/singleflight"
)

// Kind names the operation whose result is cached.
type Kind string

const (
	KindTm      Kind = "tm"
	KindDuplex  Kind = "duplex"
	KindGC      Kind = "gc"
	KindEnd     Kind = "end"
	KindHairpin Kind = "hairpin"
	KindDimer   Kind = "dimer"
)

// Key identifies a cached result. ParamID is the parameter-set identity; an
// empty ParamID marks set-independent values (GC content). Extra carries the
// canonical form of any remaining inputs (solution conditions, mode flags).
type Key struct {
	Kind    Kind
	Seqs    string
	ParamID string
	Extra   string
}

// NewKey joins seqs with '|' so ("AC","GT") and ("ACG","T") never collide.
func NewKey(kind Kind, paramID, extra string, seqs ...string) Key {
	return Key{Kind: kind, Seqs: strings.Join(seqs, "|"), ParamID: paramID, Extra: extra}
}

// String is the flat form used for single-flight grouping.
func (k Key) String() string {
	return string(k.Kind) + "\x00" + k.Seqs + "\x00" + k.ParamID + "\x00" + k.Extra
}

// Cache stores computed results.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Get never errors; it returns (nil, false) on miss.
//   - Clear drops every entry.
type Cache interface {
	Get(k Key) (any, bool)
	Put(k Key, v any)
	Clear()
	Len() int
}

// Memo couples a Cache with single-flight so that concurrent callers asking
// for the same missing key share one computation.
type Memo struct {
	cache Cache
	sf    singleflight.Group
}

// New wraps c. A nil c gets an unbounded map.
func New(c Cache) *Memo {
	if c == nil {
		c = NewMap()
	}
	return &Memo{cache: c}
}

// Cache returns the underlying store.
func (m *Memo) Cache() Cache { return m.cache }

// Clear empties the underlying store.
func (m *Memo) Clear() { m.cache.Clear() }

// Len reports the number of stored entries.
func (m *Memo) Len() int { return m.cache.Len() }

// Do returns the cached value for k or computes it with fn. Errors are
// returned to every waiting caller and never cached.
func (m *Memo) Do(k Key, fn func() (any, error)) (any, error) {
	if v, ok := m.cache.Get(k); ok {
		return v, nil
	}
	v, err, _ := m.sf.Do(k.String(), func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		m.cache.Put(k, v)
		return v, nil
	})
	return v, err
}

// Get is the typed form of Memo.Do.
func Get[T any](m *Memo, k Key, fn func() (T, error)) (T, error) {
	v, err := m.Do(k, func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
