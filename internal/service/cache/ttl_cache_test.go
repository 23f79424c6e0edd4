package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)}
}

func TestTTLCache_SetGet(t *testing.T) {
	clk := newClock()
	c := NewTTLCache[string](time.Minute, WithClock(clk.Now))

	c.SetWithTTL("k", "v", 10*time.Second)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestTTLCache_ExpiresAndPurges(t *testing.T) {
	clk := newClock()
	c := NewTTLCache[int](time.Minute, WithClock(clk.Now))

	c.SetWithTTL("k", 42, 10*time.Second)

	clk.Advance(10 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry is still valid exactly at its expiry instant")

	clk.Advance(time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is removed on read")
}

func TestTTLCache_DefaultTTLUnaffectedByCustomTTL(t *testing.T) {
	clk := newClock()
	c := NewTTLCache[string](time.Minute, WithClock(clk.Now))

	c.SetWithTTL("short", "a", time.Second)
	c.Set("default", "b")

	clk.Advance(30 * time.Second)
	_, ok := c.Get("short")
	assert.False(t, ok)
	v, ok := c.Get("default")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, time.Minute, c.DefaultTTL())

	clk.Advance(31 * time.Second)
	_, ok = c.Get("default")
	assert.False(t, ok)
}

func TestTTLCache_OverwriteResetsExpiry(t *testing.T) {
	clk := newClock()
	c := NewTTLCache[string](time.Minute, WithClock(clk.Now))

	c.Set("k", "old")
	clk.Advance(50 * time.Second)
	c.Set("k", "new")
	clk.Advance(50 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestTTLCache_DeleteAndClear(t *testing.T) {
	c := NewTTLCache[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok, "keys are independent")

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestMemoryBytes(t *testing.T) {
	clk := newClock()
	mb := NewMemoryBytes(NewTTLCache[[]byte](time.Minute, WithClock(clk.Now)))
	ctx := context.Background()

	require.NoError(t, mb.SetBytes(ctx, "k", []byte("payload"), 5*time.Second))
	b, ok, err := mb.GetBytes(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "payload", string(b))

	clk.Advance(6 * time.Second)
	_, ok, err = mb.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mb.SetBytes(ctx, "d", []byte("x"), 0))
	clk.Advance(30 * time.Second)
	_, ok, _ = mb.GetBytes(ctx, "d")
	assert.True(t, ok, "zero ttl falls back to the default")
}
