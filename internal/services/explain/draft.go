package explain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"StockAdvisor/internal/domain/models"
)

// WordLimit bounds every explanation returned to clients.
const WordLimit = 150

const (
	maxStrengths = 3
	maxRisks     = 2
)

type DraftInput struct {
	Symbol       string
	Quote        models.Quote
	ScoreDetails []models.StockScoreReason
}

// EnforceWordLimit keeps the first limit whitespace-separated words. Text
// within the limit is only trimmed; longer text is re-joined with single spaces.
func EnforceWordLimit(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:limit], " ")
}

// Draft composes the local explanation paragraph for a quote and its score
// reasons. The "roughly N/100" figure is the clamped sum of the supplied
// impacts, not the engine score.
func Draft(in DraftInput) string {
	parts := []string{fmt.Sprintf("%s trades at %s, moving %s since the previous close.",
		in.Symbol, formatPrice(in.Quote.Price), formatChange(in.Quote.Change, in.Quote.ChangePercent))}

	if len(in.ScoreDetails) > 0 {
		parts = append(parts, fmt.Sprintf(
			"It registers roughly %d/100 in your scoring model, balancing the strongest and weakest factors below.",
			totalImpact(in.ScoreDetails)))
	}

	strengths, risks := summarize(in.ScoreDetails)
	if len(strengths) > 0 {
		parts = append(parts, "Key strengths: "+strings.Join(strengths, ", ")+".")
	}
	if len(risks) > 0 {
		parts = append(parts, "Items to monitor: "+strings.Join(risks, ", ")+".")
	}

	if v := in.Quote.Volume; v != 0 && isFinite(v) {
		parts = append(parts, fmt.Sprintf("Latest reported volume came in near %s shares.", formatVolume(v)))
	}

	return EnforceWordLimit(strings.Join(parts, " "), WordLimit)
}

func totalImpact(details []models.StockScoreReason) int {
	sum := 0
	for _, d := range details {
		sum += d.Impact
	}
	if sum < 0 {
		return 0
	}
	if sum > 100 {
		return 100
	}
	return sum
}

// summarize returns the top positive and negative reasons ordered by
// absolute impact. Ties keep their input order.
func summarize(details []models.StockScoreReason) (positives, negatives []string) {
	sorted := make([]models.StockScoreReason, len(details))
	copy(sorted, details)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].Impact) > abs(sorted[j].Impact)
	})

	for _, d := range sorted {
		switch {
		case d.Impact > 0 && len(positives) < maxStrengths:
			positives = append(positives, fmt.Sprintf("%s (+%d)", d.Reason, d.Impact))
		case d.Impact < 0 && len(negatives) < maxRisks:
			negatives = append(negatives, fmt.Sprintf("%s (%d)", d.Reason, d.Impact))
		}
	}
	return positives, negatives
}

func formatPrice(p *float64) string {
	if p == nil || !isFinite(*p) {
		return "n/a"
	}
	return "$" + formatAmount(*p)
}

func formatChange(change, changePercent *float64) string {
	if change == nil || !isFinite(*change) {
		return "flat on the session"
	}
	sign := ""
	if *change >= 0 {
		sign = "+"
	}
	pct := ""
	if changePercent != nil && isFinite(*changePercent) {
		pct = fmt.Sprintf(" (%s%s%%)", sign, formatAmount(*changePercent))
	}
	return sign + formatAmount(*change) + pct
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func formatVolume(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
