package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	v   V
	exp time.Time
}

// TTLCache is an in-process key/value store with lazy expiry. The mutex only
// guards the map: a Get-miss followed by Set is not atomic, so concurrent
// callers may both compute a value and the last Set wins.
type TTLCache[V any] struct {
	mu         sync.Mutex
	m          map[string]entry[V]
	defaultTTL time.Duration
	now        func() time.Time
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewTTLCache[V any](defaultTTL time.Duration, opts ...Option) *TTLCache[V] {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &TTLCache[V]{m: make(map[string]entry[V]), defaultTTL: defaultTTL, now: o.now}
}

// Get returns the value for key. An entry past its expiry is deleted and
// reported as missing.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.exp) {
		delete(c.m, key)
		var zero V
		return zero, false
	}
	return e.v, true
}

// Set stores v under key for the default TTL.
func (c *TTLCache[V]) Set(key string, v V) {
	c.SetWithTTL(key, v, c.defaultTTL)
}

// SetWithTTL stores v under key for ttl, overwriting any existing entry.
func (c *TTLCache[V]) SetWithTTL(key string, v V, ttl time.Duration) {
	c.mu.Lock()
	c.m[key] = entry[V]{v: v, exp: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.m = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet evicted.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// DefaultTTL is the TTL used by Set.
func (c *TTLCache[V]) DefaultTTL() time.Duration { return c.defaultTTL }
