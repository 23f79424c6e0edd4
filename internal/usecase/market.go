package usecase

import (
	"context"
	"strings"
	"sync"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	"StockAdvisor/internal/services/scoring"
	applogger "StockAdvisor/pkg/logger"
)

// DefaultScreenerSymbols is the universe screened when none is requested.
var DefaultScreenerSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA"}

const screenerWorkers = 4

// MarketService serves quote, search, series, screener and stock-card reads.
type MarketService struct {
	market   drepo.MarketData
	profiles *ProfileService
	universe []string
	log      *applogger.Logger
}

func NewMarketService(market drepo.MarketData, profiles *ProfileService, universe []string, log *applogger.Logger) *MarketService {
	if len(universe) == 0 {
		universe = DefaultScreenerSymbols
	}
	return &MarketService{market: market, profiles: profiles, universe: universe, log: log}
}

// Quote returns the quote with the overview P/E attached. An overview
// failure only leaves PERatio nil.
func (s *MarketService) Quote(ctx context.Context, symbol string) (models.QuoteResponse, error) {
	symbol = strings.ToUpper(symbol)

	var (
		wg       sync.WaitGroup
		overview models.CompanyOverview
		ovErr    error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		overview, ovErr = s.market.Overview(ctx, symbol)
	}()
	quote, err := s.market.Quote(ctx, symbol)
	wg.Wait()
	if err != nil {
		return models.QuoteResponse{}, err
	}

	resp := models.QuoteResponse{Quote: quote}
	if ovErr == nil {
		resp.PERatio = models.Float(overview.PERatio)
	} else {
		s.log.Debug("overview unavailable for quote", applogger.String("symbol", symbol), applogger.Error(ovErr))
	}
	return resp, nil
}

func (s *MarketService) Search(ctx context.Context, query string) (models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	results, err := s.market.Search(ctx, query)
	if err != nil {
		return models.SearchResponse{}, err
	}
	return models.SearchResponse{Query: query, Results: results}, nil
}

// TimeSeries summarizes the daily adjusted series. An empty series is not found.
func (s *MarketService) TimeSeries(ctx context.Context, symbol string) (models.TimeSeriesSummary, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	bars, err := s.market.DailyAdjusted(ctx, symbol)
	if err != nil {
		return models.TimeSeriesSummary{}, err
	}
	if len(bars) == 0 {
		return models.TimeSeriesSummary{}, models.NewNotFound("No time series data available")
	}
	return scoring.SummarizeSeries(symbol, bars), nil
}

// Screener fetches overviews for symbols (or the default universe) and keeps
// those passing every filter. Symbols whose overview fails are skipped and
// not counted in Evaluated.
func (s *MarketService) Screener(ctx context.Context, symbols []string, f models.ScreenerFilters) models.ScreenerResponse {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		symbols = s.universe
	}

	overviews := make([]*models.CompanyOverview, len(symbols))
	sem := make(chan struct{}, screenerWorkers)
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ov, err := s.market.Overview(ctx, sym)
			if err != nil {
				s.log.Warn("screener overview failed", applogger.String("symbol", sym), applogger.Error(err))
				return
			}
			overviews[i] = &ov
		}(i, sym)
	}
	wg.Wait()

	resp := models.ScreenerResponse{Filters: f, Results: []models.ScreenerItem{}}
	for _, ov := range overviews {
		if ov == nil {
			continue
		}
		resp.Evaluated++
		if !matches(*ov, f) {
			continue
		}
		resp.Results = append(resp.Results, models.ScreenerItem{
			Symbol:               ov.Symbol,
			Name:                 ov.Name,
			Sector:               ov.Sector,
			Industry:             ov.Industry,
			MarketCapitalization: ov.MarketCapitalization,
			PERatio:              ov.PERatio,
			DividendYield:        ov.DividendYield,
		})
	}
	return resp
}

// matches applies the screener filters. Dividend bounds are percentages and
// market cap bounds are billions.
func matches(ov models.CompanyOverview, f models.ScreenerFilters) bool {
	if f.Sector != "" && !strings.EqualFold(ov.Sector, f.Sector) {
		return false
	}
	capB := ov.MarketCapitalization / 1e9
	divPct := ov.DividendYield * 100
	return within(ov.PERatio, f.PEMin, f.PEMax) &&
		within(capB, f.MarketCapMin, f.MarketCapMax) &&
		within(divPct, f.DividendYieldMin, f.DividendYieldMax)
}

func within(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func normalizeSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Card assembles a stock card: the quote is required, overview and series
// only enrich the snapshot. risk overrides the stored profile when set.
func (s *MarketService) Card(ctx context.Context, symbol string, risk models.RiskLevel) (models.StockCard, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var (
		wg       sync.WaitGroup
		overview *models.CompanyOverview
		bars     []models.DailyBar
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ov, err := s.market.Overview(ctx, symbol)
		if err != nil {
			s.log.Debug("card overview unavailable", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		overview = &ov
	}()
	go func() {
		defer wg.Done()
		b, err := s.market.DailyAdjusted(ctx, symbol)
		if err != nil {
			s.log.Debug("card series unavailable", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		bars = b
	}()
	quote, err := s.market.Quote(ctx, symbol)
	wg.Wait()
	if err != nil {
		return models.StockCard{}, err
	}

	profile, err := s.profiles.UserProfile(ctx)
	if err != nil {
		return models.StockCard{}, err
	}
	if risk != "" {
		profile.Risk = risk.Normalize()
	}

	snap := scoring.BuildSnapshot(symbol, overview, bars)
	return models.StockCard{
		Symbol:   symbol,
		Quote:    quote,
		Overview: overview,
		Snapshot: snap,
		Profile:  profile,
		Score:    scoring.ScoreStock(snap, profile),
	}, nil
}
