package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/creasty/defaults"
	"github.com/redis/go-redis/v9"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
)

// ProfileKey is the storage key of the settings profile.
const ProfileKey = "smart-stock-advisor.user-profile"

type MemoryProfileStore struct {
	mu   sync.RWMutex
	form *models.ProfileForm
}

var _ drepo.ProfileStore = (*MemoryProfileStore)(nil)

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{}
}

func (s *MemoryProfileStore) Load(_ context.Context) (models.ProfileForm, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.form == nil {
		return models.ProfileForm{}, false, nil
	}
	return s.form.Clone(), true, nil
}

func (s *MemoryProfileStore) Save(_ context.Context, form models.ProfileForm) error {
	c := form.Clone()
	s.mu.Lock()
	s.form = &c
	s.mu.Unlock()
	return nil
}

type RedisProfileStore struct {
	cli *redis.Client
	key string
}

var _ drepo.ProfileStore = (*RedisProfileStore)(nil)

func NewRedisProfileStore(cli *redis.Client, prefix string) *RedisProfileStore {
	return &RedisProfileStore{cli: cli, key: prefixed(prefix, ProfileKey)}
}

func (s *RedisProfileStore) Load(ctx context.Context) (models.ProfileForm, bool, error) {
	b, err := s.cli.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ProfileForm{}, false, nil
		}
		return models.ProfileForm{}, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	form, err := decodeProfile(b)
	if err != nil {
		return models.ProfileForm{}, false, err
	}
	return form, true, nil
}

func (s *RedisProfileStore) Save(ctx context.Context, form models.ProfileForm) error {
	b, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.cli.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// decodeProfile fills fields missing from a stored document with defaults.
func decodeProfile(b []byte) (models.ProfileForm, error) {
	var form models.ProfileForm
	if err := json.Unmarshal(b, &form); err != nil {
		return models.ProfileForm{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if err := defaults.Set(&form); err != nil {
		return models.ProfileForm{}, fmt.Errorf("profile defaults: %w", err)
	}
	return form, nil
}
