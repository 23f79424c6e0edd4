package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	applogger "StockAdvisor/pkg/logger"
)

const csvHeader = "Symbol,AddedAt"

// WatchlistService manages the persisted watchlist. Mutations are serialized
// so concurrent adds do not lose entries.
type WatchlistService struct {
	mu      sync.Mutex
	store   drepo.WatchlistStore
	backup  drepo.BackupSink
	metrics drepo.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

func NewWatchlistService(store drepo.WatchlistStore, backup drepo.BackupSink, metrics drepo.Metrics, log *applogger.Logger) *WatchlistService {
	return &WatchlistService{store: store, backup: backup, metrics: metrics, log: log, now: time.Now}
}

// List returns the watchlist newest first.
func (s *WatchlistService) List(ctx context.Context) ([]models.WatchlistEntry, error) {
	return s.load(ctx)
}

// Add puts symbol at the front of the list with a fresh timestamp, replacing
// any existing entry, then sends the new entry to the backup sink. Backup
// failures are logged only.
func (s *WatchlistService) Add(ctx context.Context, symbol string) ([]models.WatchlistEntry, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, models.ErrSymbolRequired
	}

	s.mu.Lock()
	current, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	entries := make([]models.WatchlistEntry, 0, len(current)+1)
	entries = append(entries, models.WatchlistEntry{Symbol: symbol, AddedAt: s.now().UTC()})
	for _, e := range current {
		if e.Symbol != symbol {
			entries = append(entries, e)
		}
	}
	entries = dedupe(entries)
	err = s.store.Save(ctx, entries)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save watchlist: %w", err)
	}

	s.sendBackup(ctx, entries[0])
	return entries, nil
}

// Remove drops symbol from the list. Removing an absent symbol is a no-op.
func (s *WatchlistService) Remove(ctx context.Context, symbol string) ([]models.WatchlistEntry, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, models.ErrSymbolRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]models.WatchlistEntry, 0, len(current))
	for _, e := range current {
		if e.Symbol != symbol {
			entries = append(entries, e)
		}
	}
	if err := s.store.Save(ctx, entries); err != nil {
		return nil, fmt.Errorf("save watchlist: %w", err)
	}
	return entries, nil
}

// ExportCSV renders "Symbol,AddedAt" rows joined by newlines, without a
// trailing newline.
func (s *WatchlistService) ExportCSV(ctx context.Context) (string, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	rows := make([]string, 0, len(entries)+1)
	rows = append(rows, csvHeader)
	for _, e := range entries {
		rows = append(rows, e.Symbol+","+e.AddedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	}
	return strings.Join(rows, "\n"), nil
}

// load treats a corrupt stored document as an empty list.
func (s *WatchlistService) load(ctx context.Context) ([]models.WatchlistEntry, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, drepo.ErrCorruptDocument) {
			s.log.Warn("watchlist store unreadable, resetting", applogger.Error(err))
			return []models.WatchlistEntry{}, nil
		}
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	return entries, nil
}

func (s *WatchlistService) sendBackup(ctx context.Context, e models.WatchlistEntry) {
	if err := s.backup.Backup(ctx, e); err != nil {
		s.metrics.RecordBackup(s.backup.Name(), "error")
		s.log.Warn("watchlist backup failed",
			applogger.String("sink", s.backup.Name()),
			applogger.String("symbol", e.Symbol),
			applogger.Error(err),
		)
		return
	}
	s.metrics.RecordBackup(s.backup.Name(), "ok")
}

// dedupe keeps the first position of each symbol and the last entry seen for it.
func dedupe(entries []models.WatchlistEntry) []models.WatchlistEntry {
	idx := make(map[string]int, len(entries))
	out := make([]models.WatchlistEntry, 0, len(entries))
	for _, e := range entries {
		key := strings.ToUpper(e.Symbol)
		if i, ok := idx[key]; ok {
			out[i] = e
			continue
		}
		idx[key] = len(out)
		out = append(out, e)
	}
	return out
}
