package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	applogger "StockAdvisor/pkg/logger"
)

// ProfileService owns the settings profile.
type ProfileService struct {
	mu    sync.Mutex
	store drepo.ProfileStore
	log   *applogger.Logger
}

func NewProfileService(store drepo.ProfileStore, log *applogger.Logger) *ProfileService {
	return &ProfileService{store: store, log: log}
}

// Get returns the stored form, or defaults when nothing usable is stored.
func (s *ProfileService) Get(ctx context.Context) (models.ProfileForm, error) {
	form, ok, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, drepo.ErrCorruptDocument) {
			s.log.Warn("profile store unreadable, using defaults", applogger.Error(err))
			return models.DefaultProfileForm(), nil
		}
		return models.ProfileForm{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return models.DefaultProfileForm(), nil
	}
	return form, nil
}

// Update replaces the stored form. Sectors are trimmed and blanks dropped.
func (s *ProfileService) Update(ctx context.Context, form models.ProfileForm) (models.ProfileForm, error) {
	form = form.Clone()
	form.PreferredSectors = cleanSectors(form.PreferredSectors)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, form); err != nil {
		return models.ProfileForm{}, fmt.Errorf("save profile: %w", err)
	}
	return form, nil
}

// Reset stores and returns the default form.
func (s *ProfileService) Reset(ctx context.Context) (models.ProfileForm, error) {
	return s.Update(ctx, models.DefaultProfileForm())
}

// ToggleSector adds sector to the preferred list, or removes it when present.
// A blank sector leaves the profile untouched.
func (s *ProfileService) ToggleSector(ctx context.Context, sector string) (models.ProfileForm, error) {
	sector = strings.TrimSpace(sector)

	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.Get(ctx)
	if err != nil {
		return models.ProfileForm{}, err
	}
	if sector == "" {
		return form, nil
	}

	form = form.Clone()
	kept := form.PreferredSectors[:0]
	removed := false
	for _, existing := range form.PreferredSectors {
		if existing == sector {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		kept = append(kept, sector)
	}
	form.PreferredSectors = kept

	if err := s.store.Save(ctx, form); err != nil {
		return models.ProfileForm{}, fmt.Errorf("save profile: %w", err)
	}
	return form, nil
}

// UserProfile is the stored form in the shape the scoring engine takes.
func (s *ProfileService) UserProfile(ctx context.Context) (models.UserProfile, error) {
	form, err := s.Get(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	return form.UserProfile(), nil
}

func cleanSectors(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
