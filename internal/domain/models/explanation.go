package models

import (
	"math"
	"strings"
	"time"
)

type ExplanationSource string

const (
	SourceLocal         ExplanationSource = "local"
	SourceOpenAI        ExplanationSource = "openai"
	SourceLocalFallback ExplanationSource = "local-fallback"
)

type ExplanationRecord struct {
	Symbol       string             `json:"symbol"`
	Explanation  string             `json:"explanation"`
	Source       ExplanationSource  `json:"source"`
	GeneratedAt  time.Time          `json:"generatedAt"`
	Quote        Quote              `json:"quote"`
	ScoreDetails []StockScoreReason `json:"scoreDetails"`
}

type ExplanationResponse struct {
	ExplanationRecord
	Cached bool `json:"cached"`
}

// MaxImpact bounds the magnitude of an inbound score detail impact.
const MaxImpact = 1000

// ScoreDetailInput mirrors StockScoreReason but keeps presence information
// so that a missing reason or impact can be rejected.
type ScoreDetailInput struct {
	Reason *string  `json:"reason" validate:"required"`
	Impact *float64 `json:"impact" validate:"required,gte=-1000,lte=1000"`
}

// ExplainRequest is the body of POST /api/explain.
type ExplainRequest struct {
	Symbol       string             `json:"symbol" validate:"required,notblank"`
	ScoreDetails []ScoreDetailInput `json:"scoreDetails" validate:"required,dive"`
}

// Explain is the validated form of an ExplainRequest.
type Explain struct {
	Symbol       string
	ScoreDetails []StockScoreReason
}

// Normalize upper-cases the symbol and rounds impacts half-up to whole
// numbers, clamped to ±MaxImpact.
func (r ExplainRequest) Normalize() Explain {
	details := make([]StockScoreReason, 0, len(r.ScoreDetails))
	for _, d := range r.ScoreDetails {
		details = append(details, StockScoreReason{
			Reason: *d.Reason,
			Impact: roundImpact(*d.Impact),
		})
	}
	return Explain{
		Symbol:       strings.ToUpper(strings.TrimSpace(r.Symbol)),
		ScoreDetails: details,
	}
}

func roundImpact(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(math.Max(-MaxImpact, math.Min(MaxImpact, v)) + 0.5))
}
