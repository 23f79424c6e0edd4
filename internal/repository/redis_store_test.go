package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/domain/models"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	return mr, cli
}

func TestRedisWatchlistStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, cli := newMiniRedis(t)
	s := NewRedisWatchlistStore(cli, "sa")

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	in := []models.WatchlistEntry{
		{Symbol: "MSFT", AddedAt: fixedNow},
		{Symbol: "AAPL", AddedAt: fixedNow.Add(-time.Hour)},
	}
	require.NoError(t, s.Save(ctx, in))
	assert.True(t, mr.Exists("sa:"+WatchlistKey))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "MSFT", got[0].Symbol)
	assert.True(t, fixedNow.Equal(got[0].AddedAt))
	assert.Equal(t, "AAPL", got[1].Symbol)
}

func TestRedisWatchlistStore_CorruptDocument(t *testing.T) {
	mr, cli := newMiniRedis(t)
	require.NoError(t, mr.Set(WatchlistKey, "{not json"))

	_, err := NewRedisWatchlistStore(cli, "").Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestRedisWatchlistStore_Unreachable(t *testing.T) {
	mr, cli := newMiniRedis(t)
	mr.Close()

	_, err := NewRedisWatchlistStore(cli, "").Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptDocument)
}

func TestRedisProfileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, cli := newMiniRedis(t)
	s := NewRedisProfileStore(cli, "sa")

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	form := models.ProfileForm{
		InvestmentHorizon:  models.HorizonLong,
		RiskProfile:        models.RiskAggressive,
		PreferredSectors:   []string{"Technology"},
		NotificationsOptIn: true,
	}
	require.NoError(t, s.Save(ctx, form))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, form, got)
}

func TestRedisProfileStore_FillsDefaults(t *testing.T) {
	mr, cli := newMiniRedis(t)
	require.NoError(t, mr.Set(ProfileKey, `{"notificationsOptIn":true}`))

	got, ok, err := NewRedisProfileStore(cli, "").Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.RiskModerate, got.RiskProfile)
	assert.Equal(t, models.HorizonMid, got.InvestmentHorizon)
	assert.True(t, got.NotificationsOptIn)
}
