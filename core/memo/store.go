// core/memo/store.go
package memo

import (
	"container/list"
	"sync"
)

// Map is an unbounded cache. Entries live until Clear.
type Map struct {
	mu      sync.RWMutex
	entries map[Key]any
}

func NewMap() *Map { return &Map{entries: make(map[Key]any)} }

func (c *Map) Get(k Key) (any, bool) {
	c.mu.RLock()
	v, ok := c.entries[k]
	c.mu.RUnlock()
	return v, ok
}

func (c *Map) Put(k Key, v any) {
	c.mu.Lock()
	c.entries[k] = v
	c.mu.Unlock()
}

func (c *Map) Clear() {
	c.mu.Lock()
	c.entries = make(map[Key]any)
	c.mu.Unlock()
}

func (c *Map) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// LRU is a size-bounded cache with O(1) hit/insert and least-recently-used
// eviction.
type LRU struct {
	mu  sync.Mutex
	cap int
	ll  *list.List
	m   map[Key]*list.Element
}

type lruNode struct {
	k Key
	v any
}

// DefaultLRUCapacity is used when NewLRU gets a non-positive capacity.
const DefaultLRUCapacity = 50_000

func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultLRUCapacity
	}
	return &LRU{cap: capacity, ll: list.New(), m: make(map[Key]*list.Element)}
}

func (c *LRU) Get(k Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[k]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(e)
	return e.Value.(*lruNode).v, true
}

func (c *LRU) Put(k Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		e.Value.(*lruNode).v = v
		c.ll.MoveToFront(e)
		return
	}
	c.m[k] = c.ll.PushFront(&lruNode{k: k, v: v})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*lruNode).k)
		}
	}
}

func (c *LRU) Clear() {
	c.mu.Lock()
	c.ll.Init()
	c.m = make(map[Key]*list.Element)
	c.mu.Unlock()
}

func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

var (
	_ Cache = (*Map)(nil)
	_ Cache = (*LRU)(nil)
)
