package usecase

import (
	"context"
	"errors"
	"sync"

	"StockAdvisor/internal/domain/models"
)

type fakeMarket struct {
	mu        sync.Mutex
	quotes    map[string]models.Quote
	overviews map[string]models.CompanyOverview
	series    map[string][]models.DailyBar
	matches   []models.SymbolMatch
	quoteErr  error
	quoteHits int
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		quotes:    map[string]models.Quote{},
		overviews: map[string]models.CompanyOverview{},
		series:    map[string][]models.DailyBar{},
	}
}

func (f *fakeMarket) Quote(_ context.Context, symbol string) (models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quoteHits++
	if f.quoteErr != nil {
		return models.Quote{}, f.quoteErr
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return models.Quote{}, models.NewNotFound("No quote data available")
	}
	return q, nil
}

func (f *fakeMarket) Overview(_ context.Context, symbol string) (models.CompanyOverview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ov, ok := f.overviews[symbol]
	if !ok {
		return models.CompanyOverview{}, models.NewNotFound("No overview data available")
	}
	return ov, nil
}

func (f *fakeMarket) Search(_ context.Context, _ string) ([]models.SymbolMatch, error) {
	return f.matches, nil
}

func (f *fakeMarket) DailyAdjusted(_ context.Context, symbol string) ([]models.DailyBar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.series[symbol], nil
}

type fakePolisher struct {
	text  string
	err   error
	calls int
}

func (p *fakePolisher) Polish(_ context.Context, _ string, draft string) (string, models.ExplanationSource, error) {
	p.calls++
	if p.err != nil {
		return "", "", p.err
	}
	if p.text == "" {
		return draft, models.SourceLocal, nil
	}
	return p.text, models.SourceOpenAI, nil
}

type recordingSink struct {
	mu      sync.Mutex
	entries []models.WatchlistEntry
	err     error
}

func (s *recordingSink) Backup(_ context.Context, e models.WatchlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return s.err
}

func (s *recordingSink) Name() string { return "recording" }

type brokenProfileStore struct{ err error }

func (b brokenProfileStore) Load(context.Context) (models.ProfileForm, bool, error) {
	return models.ProfileForm{}, false, b.err
}

func (b brokenProfileStore) Save(context.Context, models.ProfileForm) error {
	return errors.New("read only")
}

type brokenWatchlistStore struct{ err error }

func (b brokenWatchlistStore) Load(context.Context) ([]models.WatchlistEntry, error) {
	return nil, b.err
}

func (b brokenWatchlistStore) Save(context.Context, []models.WatchlistEntry) error { return nil }
