package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	"StockAdvisor/internal/repository"
	applogger "StockAdvisor/pkg/logger"
	"StockAdvisor/pkg/metrics"
)

func newTestWatchlist(sink *recordingSink) (*WatchlistService, *time.Time) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc := NewWatchlistService(repository.NewMemoryWatchlistStore(), sink, metrics.Nop{}, applogger.NewNop())
	svc.now = func() time.Time { return now }
	return svc, &now
}

func symbols(entries []models.WatchlistEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Symbol
	}
	return out
}

func TestWatchlist_AddNewestFirst(t *testing.T) {
	sink := &recordingSink{}
	svc, now := newTestWatchlist(sink)
	ctx := context.Background()

	_, err := svc.Add(ctx, " aapl ")
	require.NoError(t, err)
	*now = now.Add(time.Minute)
	entries, err := svc.Add(ctx, "msft")
	require.NoError(t, err)

	assert.Equal(t, []string{"MSFT", "AAPL"}, symbols(entries))
	require.Len(t, sink.entries, 2)
	assert.Equal(t, "MSFT", sink.entries[1].Symbol)
}

func TestWatchlist_ReAddMovesToFront(t *testing.T) {
	svc, now := newTestWatchlist(&recordingSink{})
	ctx := context.Background()

	for _, s := range []string{"AAPL", "MSFT", "KO"} {
		_, err := svc.Add(ctx, s)
		require.NoError(t, err)
		*now = now.Add(time.Minute)
	}
	entries, err := svc.Add(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "KO", "MSFT"}, symbols(entries))
	assert.Equal(t, *now, entries[0].AddedAt)
}

func TestWatchlist_BlankSymbol(t *testing.T) {
	svc, _ := newTestWatchlist(&recordingSink{})

	_, err := svc.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrSymbolRequired)
}

func TestWatchlist_BackupFailureDoesNotFailAdd(t *testing.T) {
	svc, _ := newTestWatchlist(&recordingSink{err: errors.New("webhook down")})

	entries, err := svc.Add(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, symbols(entries))
}

func TestWatchlist_Remove(t *testing.T) {
	svc, _ := newTestWatchlist(&recordingSink{})
	ctx := context.Background()
	_, _ = svc.Add(ctx, "AAPL")
	_, _ = svc.Add(ctx, "MSFT")

	entries, err := svc.Remove(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, symbols(entries))

	entries, err = svc.Remove(ctx, "NOPE")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, symbols(entries))
}

func TestWatchlist_ExportCSV(t *testing.T) {
	svc, now := newTestWatchlist(&recordingSink{})
	ctx := context.Background()

	csv, err := svc.ExportCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Symbol,AddedAt", csv)

	_, _ = svc.Add(ctx, "AAPL")
	*now = now.Add(90 * time.Second)
	_, _ = svc.Add(ctx, "MSFT")

	csv, err = svc.ExportCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Symbol,AddedAt\nMSFT,2024-05-01T09:31:30.000Z\nAAPL,2024-05-01T09:30:00.000Z", csv)
}

func TestWatchlist_CorruptStoreReadsEmpty(t *testing.T) {
	store := brokenWatchlistStore{err: drepo.ErrCorruptDocument}
	svc := NewWatchlistService(store, &recordingSink{}, metrics.Nop{}, applogger.NewNop())

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWatchlist_StoreErrorSurfaces(t *testing.T) {
	store := brokenWatchlistStore{err: errors.New("redis down")}
	svc := NewWatchlistService(store, &recordingSink{}, metrics.Nop{}, applogger.NewNop())

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestDedupe(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	out := dedupe([]models.WatchlistEntry{
		{Symbol: "AAPL", AddedAt: t1},
		{Symbol: "MSFT", AddedAt: t1},
		{Symbol: "AAPL", AddedAt: t2},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "AAPL", out[0].Symbol)
	assert.Equal(t, t2, out[0].AddedAt)
}
