package repository

import (
	"context"
	"errors"

	"StockAdvisor/internal/domain/models"
)

// ErrCorruptDocument is returned by stores whose persisted document cannot be decoded.
var ErrCorruptDocument = errors.New("stored document is corrupt")

// MarketData is the market data collaborator. Failures are *models.MarketDataError.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (models.Quote, error)
	Overview(ctx context.Context, symbol string) (models.CompanyOverview, error)
	Search(ctx context.Context, keywords string) ([]models.SymbolMatch, error)
	DailyAdjusted(ctx context.Context, symbol string) ([]models.DailyBar, error)
}

type WatchlistStore interface {
	Load(ctx context.Context) ([]models.WatchlistEntry, error)
	Save(ctx context.Context, entries []models.WatchlistEntry) error
}

type ProfileStore interface {
	Load(ctx context.Context) (models.ProfileForm, bool, error)
	Save(ctx context.Context, form models.ProfileForm) error
}

// BackupSink receives newly added watchlist entries. Failures are logged by
// the caller and never fail the add.
type BackupSink interface {
	Backup(ctx context.Context, entry models.WatchlistEntry) error
	Name() string
}

type Metrics interface {
	RecordUpstreamCall(function, outcome string)
	RecordExplanation(source string, cached bool)
	RecordBackup(sink, outcome string)
	RecordLatency(op string, seconds float64)
}
