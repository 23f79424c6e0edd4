package models

// Quote is the latest session snapshot for a symbol. Change and ChangePercent
// are nil when the provider did not report a parseable value.
type Quote struct {
	Symbol           string   `json:"symbol"`
	Price            *float64 `json:"price"`
	Change           *float64 `json:"change"`
	ChangePercent    *float64 `json:"changePercent"`
	Volume           float64  `json:"volume"`
	LatestTradingDay string   `json:"latestTradingDay,omitempty"`
	PreviousClose    float64  `json:"previousClose"`
	Open             float64  `json:"open"`
	High             float64  `json:"high"`
	Low              float64  `json:"low"`
}

type CompanyOverview struct {
	Symbol               string   `json:"symbol"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Sector               string   `json:"sector"`
	Industry             string   `json:"industry"`
	MarketCapitalization float64  `json:"marketCapitalization"`
	PERatio              float64  `json:"peRatio"`
	DividendYield        float64  `json:"dividendYield"`
	EarningsGrowth       *float64 `json:"earningsGrowth,omitempty"`
}

type SymbolMatch struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	Currency   string  `json:"currency"`
	MatchScore float64 `json:"matchScore"`
}

// DailyBar is one adjusted daily close. Series are ordered newest first.
type DailyBar struct {
	Date          string  `json:"date"`
	AdjustedClose float64 `json:"adjustedClose"`
}

// TimeSeriesSummary describes a daily series. AnnualizedVolatility is a
// fraction, e.g. 0.25 for 25%.
type TimeSeriesSummary struct {
	Symbol               string   `json:"symbol"`
	LastClose            float64  `json:"lastClose"`
	PercentChange1D      float64  `json:"percentChange1D"`
	PercentChange90D     float64  `json:"percentChange90D"`
	DataPoints           int      `json:"dataPoints"`
	AnnualizedVolatility *float64 `json:"annualizedVolatility"`
}

// QuoteResponse is the payload of GET /api/quote.
type QuoteResponse struct {
	Quote
	PERatio *float64 `json:"peRatio"`
}

type SearchResponse struct {
	Query   string        `json:"query"`
	Results []SymbolMatch `json:"results"`
}

// ScreenerFilters are expressed the way the settings panel shows them:
// dividend yield in percent, market cap in billions.
type ScreenerFilters struct {
	PEMin            *float64 `json:"peMin,omitempty"`
	PEMax            *float64 `json:"peMax,omitempty"`
	DividendYieldMin *float64 `json:"dividendYieldMin,omitempty"`
	DividendYieldMax *float64 `json:"dividendYieldMax,omitempty"`
	Sector           string   `json:"sector,omitempty"`
	MarketCapMin     *float64 `json:"marketCapMin,omitempty"`
	MarketCapMax     *float64 `json:"marketCapMax,omitempty"`
}

type ScreenerItem struct {
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	Sector               string  `json:"sector"`
	Industry             string  `json:"industry"`
	MarketCapitalization float64 `json:"marketCapitalization"`
	PERatio              float64 `json:"peRatio"`
	DividendYield        float64 `json:"dividendYield"`
}

type ScreenerResponse struct {
	Filters   ScreenerFilters `json:"filters"`
	Results   []ScreenerItem  `json:"results"`
	Evaluated int             `json:"evaluated"`
}
