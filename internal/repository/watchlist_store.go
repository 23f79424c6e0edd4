package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	xutil "StockAdvisor/pkg/util"
)

// WatchlistKey is the storage key of the serialized watchlist.
const WatchlistKey = "smart-stock-advisor.watchlist"

// MemoryWatchlistStore keeps the watchlist in process memory.
type MemoryWatchlistStore struct {
	mu      sync.RWMutex
	entries []models.WatchlistEntry
}

var _ drepo.WatchlistStore = (*MemoryWatchlistStore)(nil)

func NewMemoryWatchlistStore() *MemoryWatchlistStore {
	return &MemoryWatchlistStore{}
}

func (s *MemoryWatchlistStore) Load(_ context.Context) ([]models.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryWatchlistStore) Save(_ context.Context, entries []models.WatchlistEntry) error {
	s.mu.Lock()
	s.entries = append(s.entries[:0:0], entries...)
	s.mu.Unlock()
	return nil
}

// RedisWatchlistStore persists the watchlist as one JSON document.
type RedisWatchlistStore struct {
	cli *redis.Client
	key string
	now func() time.Time
}

var _ drepo.WatchlistStore = (*RedisWatchlistStore)(nil)

func NewRedisWatchlistStore(cli *redis.Client, prefix string) *RedisWatchlistStore {
	return &RedisWatchlistStore{cli: cli, key: prefixed(prefix, WatchlistKey), now: time.Now}
}

// Load returns the stored entries. A missing key is an empty list; a
// corrupt document is reported as ErrCorruptDocument.
func (s *RedisWatchlistStore) Load(ctx context.Context) ([]models.WatchlistEntry, error) {
	b, err := s.cli.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.WatchlistEntry{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decodeWatchlist(b, s.now)
}

func (s *RedisWatchlistStore) Save(ctx context.Context, entries []models.WatchlistEntry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.cli.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

var ErrCorruptDocument = drepo.ErrCorruptDocument

type storedEntry struct {
	Symbol  *string `json:"symbol"`
	AddedAt string  `json:"addedAt"`
}

// decodeWatchlist drops entries without a symbol, upper-cases symbols and
// stamps entries lacking a valid addedAt with now.
func decodeWatchlist(b []byte, now func() time.Time) ([]models.WatchlistEntry, error) {
	var raw []storedEntry
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	out := make([]models.WatchlistEntry, 0, len(raw))
	for _, r := range raw {
		if r.Symbol == nil {
			continue
		}
		at, ok := xutil.ParseTime(r.AddedAt)
		if !ok {
			at = now().UTC()
		}
		out = append(out, models.WatchlistEntry{Symbol: strings.ToUpper(*r.Symbol), AddedAt: at})
	}
	return out, nil
}

func prefixed(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}
