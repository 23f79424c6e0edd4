package cache

import (
	"context"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryBytes adapts a TTLCache to BytesCache.
type MemoryBytes struct {
	c *TTLCache[[]byte]
}

func NewMemoryBytes(c *TTLCache[[]byte]) *MemoryBytes {
	return &MemoryBytes{c: c}
}

func (m *MemoryBytes) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := m.c.Get(key)
	return b, ok, nil
}

func (m *MemoryBytes) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		m.c.Set(key, value)
		return nil
	}
	m.c.SetWithTTL(key, value, ttl)
	return nil
}
