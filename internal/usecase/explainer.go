package usecase

import (
	"context"
	"fmt"
	"time"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	domsvc "StockAdvisor/internal/domain/service"
	"StockAdvisor/internal/service/cache"
	"StockAdvisor/internal/services/explain"
	applogger "StockAdvisor/pkg/logger"
)

// DefaultExplanationTTL is how long a composed explanation is served per symbol.
const DefaultExplanationTTL = 6 * time.Hour

// Explainer composes, polishes and caches per-symbol explanations.
type Explainer struct {
	market   drepo.MarketData
	polisher domsvc.Polisher
	cache    *cache.TTLCache[models.ExplanationRecord]
	ttl      time.Duration
	metrics  drepo.Metrics
	log      *applogger.Logger
	now      func() time.Time
}

func NewExplainer(
	market drepo.MarketData,
	polisher domsvc.Polisher,
	c *cache.TTLCache[models.ExplanationRecord],
	ttl time.Duration,
	metrics drepo.Metrics,
	log *applogger.Logger,
) *Explainer {
	if ttl <= 0 {
		ttl = DefaultExplanationTTL
	}
	return &Explainer{
		market:   market,
		polisher: polisher,
		cache:    c,
		ttl:      ttl,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

func cacheKey(symbol string) string { return "explain:" + symbol }

// Explain returns the cached explanation for req.Symbol, or builds one from a
// fresh quote. Quote failures are returned unchanged; polish failures fall
// back to the local draft.
//
// A cache hit returns the stored record even when req carries different
// score details.
func (e *Explainer) Explain(ctx context.Context, req models.Explain) (models.ExplanationResponse, error) {
	start := e.now()
	defer func() { e.metrics.RecordLatency("explain", e.now().Sub(start).Seconds()) }()

	key := cacheKey(req.Symbol)
	if rec, ok := e.cache.Get(key); ok {
		e.metrics.RecordExplanation(string(rec.Source), true)
		return models.ExplanationResponse{ExplanationRecord: rec, Cached: true}, nil
	}

	quote, err := e.market.Quote(ctx, req.Symbol)
	if err != nil {
		return models.ExplanationResponse{}, fmt.Errorf("explain %s: %w", req.Symbol, err)
	}

	details := req.ScoreDetails
	if details == nil {
		details = []models.StockScoreReason{}
	}
	in := explain.DraftInput{Symbol: req.Symbol, Quote: quote, ScoreDetails: details}
	draft := explain.Draft(in)

	text, source, err := e.polisher.Polish(ctx, explain.BuildPolishPrompt(in, draft), draft)
	if err != nil {
		e.log.Warn("explanation polish failed, falling back to draft",
			applogger.String("symbol", req.Symbol),
			applogger.Error(err),
		)
		text, source = draft, models.SourceLocalFallback
	}

	rec := models.ExplanationRecord{
		Symbol:       req.Symbol,
		Explanation:  text,
		Source:       source,
		GeneratedAt:  e.now().UTC(),
		Quote:        quote,
		ScoreDetails: details,
	}
	e.cache.SetWithTTL(key, rec, e.ttl)
	e.metrics.RecordExplanation(string(source), false)

	return models.ExplanationResponse{ExplanationRecord: rec, Cached: false}, nil
}
