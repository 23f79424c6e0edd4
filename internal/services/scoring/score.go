package scoring

import "StockAdvisor/internal/domain/models"

// Factor weights. They sum to 100; the risk weight is nominal and does not
// bound the risk adjustment.
const (
	WeightPE       = 30.0
	WeightGrowth   = 25.0
	WeightDividend = 20.0
	WeightMomentum = 15.0
	WeightRisk     = 10.0
)

const (
	MaxPE       = 40.0 // P/E at or above this earns nothing
	MaxGrowth   = 0.25
	MaxDividend = 0.06
	MaxMomentum = 0.15

	minScore = 0
	maxScore = 100
)

const (
	ReasonLowPE       = "Low P/E relative to cap"
	ReasonSolidGrowth = "Solid earnings growth"
	ReasonWeakGrowth  = "Weak earnings trend"
	ReasonDividend    = "Attractive dividend yield"
	ReasonPosMomentum = "Positive 3M momentum"
	ReasonNegMomentum = "Negative 3M momentum"
	ReasonRiskBoost   = "Risk profile boost"
	ReasonRiskDrag    = "Risk profile drag"
)

// ScoreStock maps fundamentals and a risk profile to a 0-100 score with the
// reasons behind it. Missing or non-finite fields are skipped; it never fails.
func ScoreStock(stock models.StockSnapshot, profile models.UserProfile) models.StockScore {
	total := 0.0
	reasons := make([]models.StockScoreReason, 0, 5)
	add := func(label string, contribution float64) {
		reasons = append(reasons, models.StockScoreReason{Reason: label, Impact: roundHalfUp(contribution)})
	}

	if pe, ok := value(stock.PERatio); ok && pe > 0 {
		peScore := (MaxPE - clamp(pe, 0, MaxPE)) / MaxPE * WeightPE
		total += peScore
		add(ReasonLowPE, peScore)
	}

	if g, ok := value(stock.EarningsGrowth); ok {
		clamped := clamp(g, -MaxGrowth, MaxGrowth)
		growthScore := (clamped + MaxGrowth) / (2 * MaxGrowth) * WeightGrowth
		total += growthScore
		if growthScore != 0 {
			if clamped >= 0 {
				add(ReasonSolidGrowth, growthScore)
			} else {
				add(ReasonWeakGrowth, growthScore)
			}
		}
	}

	if d, ok := value(stock.DividendYield); ok && d >= 0 {
		dividendScore := clamp(d, 0, MaxDividend) / MaxDividend * WeightDividend
		total += dividendScore
		if dividendScore > 0 {
			add(ReasonDividend, dividendScore)
		}
	}

	if m, ok := value(stock.Momentum3M); ok {
		clamped := clamp(m, -MaxMomentum, MaxMomentum)
		momentumScore := (clamped + MaxMomentum) / (2 * MaxMomentum) * WeightMomentum
		total += momentumScore
		if momentumScore != 0 {
			if clamped >= 0 {
				add(ReasonPosMomentum, momentumScore)
			} else {
				add(ReasonNegMomentum, momentumScore)
			}
		}
	}

	adj := RiskAdjustment(total, stock, profile.Risk)
	total += adj
	switch {
	case adj > 0:
		add(ReasonRiskBoost, adj)
	case adj < 0:
		add(ReasonRiskDrag, adj)
	}

	score := roundHalfUp(total)
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	return models.StockScore{Score: score, Reasons: reasons}
}

// RiskAdjustment shifts the score toward what the investor profile values.
// baseScore is the running total before the adjustment.
func RiskAdjustment(baseScore float64, stock models.StockSnapshot, risk models.RiskLevel) float64 {
	dividend, hasDividend := value(stock.DividendYield)
	growth, hasGrowth := value(stock.EarningsGrowth)
	momentum, hasMomentum := value(stock.Momentum3M)

	switch risk.Normalize() {
	case models.RiskConservative:
		adj := 0.0
		if hasDividend {
			adj += dividend * 100 * 0.15
		}
		if pe, ok := value(stock.PERatio); ok && pe > 0 {
			adj += clamp((MaxPE-pe)/MaxPE, 0, 1) * 5
		}
		if hasMomentum && momentum < 0 {
			adj += momentum * 50
		}
		return adj
	case models.RiskAggressive:
		adj := 0.0
		if hasGrowth {
			adj += growth * 100 * 0.2
		}
		if hasMomentum {
			adj += momentum * 100 * 0.25
		}
		if hasDividend {
			adj -= dividend * 100 * 0.05
		}
		return adj
	default:
		return baseScore / 100 * 5
	}
}
