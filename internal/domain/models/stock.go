package models

import "strings"

type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
)

// Normalize resolves r to one of the three known levels; anything else is moderate.
func (r RiskLevel) Normalize() RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(string(r)))) {
	case RiskConservative:
		return RiskConservative
	case RiskAggressive:
		return RiskAggressive
	default:
		return RiskModerate
	}
}

type InvestmentHorizon string

const (
	HorizonShort InvestmentHorizon = "short"
	HorizonMid   InvestmentHorizon = "mid"
	HorizonLong  InvestmentHorizon = "long"
)

// StockSnapshot holds one company's fundamentals at a point in time.
// Ratios are decimal fractions (0.12 = 12%). A nil field means unknown.
type StockSnapshot struct {
	Symbol         string   `json:"symbol" validate:"required"`
	PERatio        *float64 `json:"peRatio"`
	EarningsGrowth *float64 `json:"earningsGrowth"`
	DividendYield  *float64 `json:"dividendYield"`
	Momentum3M     *float64 `json:"momentum3M"`
}

type UserProfile struct {
	Risk               RiskLevel         `json:"risk"`
	InvestmentHorizon  InvestmentHorizon `json:"investmentHorizon,omitempty"`
	PreferredSectors   []string          `json:"preferredSectors,omitempty"`
	NotificationsOptIn bool              `json:"notificationsOptIn"`
}

type StockScoreReason struct {
	Reason string `json:"reason"`
	Impact int    `json:"impact"`
}

type StockScore struct {
	Score   int                `json:"score"`
	Reasons []StockScoreReason `json:"reasons"`
}

// ScoreRequest is the body of POST /api/score.
type ScoreRequest struct {
	Snapshot StockSnapshot `json:"snapshot" validate:"required"`
	Profile  UserProfile   `json:"profile"`
}

// StockCard bundles what the dashboard renders for one ticker.
type StockCard struct {
	Symbol   string           `json:"symbol"`
	Quote    Quote            `json:"quote"`
	Overview *CompanyOverview `json:"overview"`
	Snapshot StockSnapshot    `json:"snapshot"`
	Profile  UserProfile      `json:"profile"`
	Score    StockScore       `json:"score"`
}

// Float returns a pointer to v. Handy for building snapshots.
func Float(v float64) *float64 { return &v }
