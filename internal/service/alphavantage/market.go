package alphavantage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"

	"StockAdvisor/internal/domain/models"
	xutil "StockAdvisor/pkg/util"
)

const (
	fnQuote  = "GLOBAL_QUOTE"
	fnSearch = "SYMBOL_SEARCH"
	fnOver   = "OVERVIEW"
	fnDaily  = "TIME_SERIES_DAILY_ADJUSTED"
)

func decode(b []byte, v any) error {
	if err := json.Unmarshal(b, v); err != nil {
		return models.NewUpstream(http.StatusBadGateway, "Alpha Vantage returned a malformed payload", err)
	}
	return nil
}

// Quote fetches GLOBAL_QUOTE. An empty "Global Quote" object is not found.
func (c *Client) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	b, err := c.fetch(ctx, fnQuote, url.Values{"symbol": {symbol}})
	if err != nil {
		return models.Quote{}, err
	}
	var payload struct {
		Quote map[string]string `json:"Global Quote"`
	}
	if err := decode(b, &payload); err != nil {
		return models.Quote{}, err
	}
	q := payload.Quote
	if len(q) == 0 {
		return models.Quote{}, models.NewNotFound("Quote not found")
	}
	return models.Quote{
		Symbol:           q["01. symbol"],
		Price:            field(q, "05. price"),
		Change:           field(q, "09. change"),
		ChangePercent:    field(q, "10. change percent"),
		Volume:           number(q, "06. volume"),
		LatestTradingDay: q["07. latest trading day"],
		PreviousClose:    number(q, "08. previous close"),
		Open:             number(q, "02. open"),
		High:             number(q, "03. high"),
		Low:              number(q, "04. low"),
	}, nil
}

// Search fetches SYMBOL_SEARCH best matches. No matches is an empty slice.
func (c *Client) Search(ctx context.Context, keywords string) ([]models.SymbolMatch, error) {
	b, err := c.fetch(ctx, fnSearch, url.Values{"keywords": {keywords}})
	if err != nil {
		return nil, err
	}
	var payload struct {
		BestMatches []map[string]string `json:"bestMatches"`
	}
	if err := decode(b, &payload); err != nil {
		return nil, err
	}
	out := make([]models.SymbolMatch, 0, len(payload.BestMatches))
	for _, m := range payload.BestMatches {
		out = append(out, models.SymbolMatch{
			Symbol:     m["1. symbol"],
			Name:       m["2. name"],
			Region:     m["4. region"],
			Currency:   m["8. currency"],
			MatchScore: number(m, "9. matchScore"),
		})
	}
	return out, nil
}

// Overview fetches company fundamentals. A payload without Symbol is not found.
func (c *Client) Overview(ctx context.Context, symbol string) (models.CompanyOverview, error) {
	b, err := c.fetch(ctx, fnOver, url.Values{"symbol": {symbol}})
	if err != nil {
		return models.CompanyOverview{}, err
	}
	var p map[string]any
	if err := decode(b, &p); err != nil {
		return models.CompanyOverview{}, err
	}
	s := stringsOnly(p)
	if s["Symbol"] == "" {
		return models.CompanyOverview{}, models.NewNotFound("Overview not found")
	}
	ov := models.CompanyOverview{
		Symbol:               s["Symbol"],
		Name:                 s["Name"],
		Description:          s["Description"],
		Sector:               s["Sector"],
		Industry:             s["Industry"],
		MarketCapitalization: number(s, "MarketCapitalization"),
		PERatio:              number(s, "PERatio"),
		DividendYield:        number(s, "DividendYield"),
	}
	if g, ok := xutil.ParseNumber(s["QuarterlyEarningsGrowthYOY"]); ok {
		ov.EarningsGrowth = models.Float(g)
	}
	return ov, nil
}

// DailyAdjusted fetches the compact daily adjusted series, newest bar first.
// Bars with an unparseable date or close are dropped.
func (c *Client) DailyAdjusted(ctx context.Context, symbol string) ([]models.DailyBar, error) {
	b, err := c.fetch(ctx, fnDaily, url.Values{"symbol": {symbol}, "outputsize": {"compact"}})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Series map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := decode(b, &payload); err != nil {
		return nil, err
	}
	bars := make([]models.DailyBar, 0, len(payload.Series))
	for day, v := range payload.Series {
		if _, ok := xutil.ParseDay(day); !ok {
			continue
		}
		closePx, ok := xutil.ParseNumber(v["5. adjusted close"])
		if !ok {
			continue
		}
		bars = append(bars, models.DailyBar{Date: day, AdjustedClose: closePx})
	}
	// YYYY-MM-DD sorts chronologically as text
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date > bars[j].Date })
	return bars, nil
}

// field returns the parsed value, 0 when the key is absent, and nil when the
// key holds something that is not a number.
func field(m map[string]string, key string) *float64 {
	raw, present := m[key]
	if !present {
		return models.Float(0)
	}
	v, ok := xutil.ParseNumber(raw)
	if !ok {
		return nil
	}
	return models.Float(v)
}

func number(m map[string]string, key string) float64 {
	v, _ := xutil.ParseNumber(m[key])
	return v
}

func stringsOnly(p map[string]any) map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
