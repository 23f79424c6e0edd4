package service

import (
	"context"

	"StockAdvisor/internal/domain/models"
)

// Polisher rewrites a local explanation draft. Implementations report which
// path produced the text; callers fall back to the draft on error.
type Polisher interface {
	Polish(ctx context.Context, prompt, draft string) (string, models.ExplanationSource, error)
}
