package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/domain/models"
	"StockAdvisor/internal/repository"
	"StockAdvisor/internal/service/cache"
	"StockAdvisor/internal/service/ratelimit"
	"StockAdvisor/internal/services/explain"
	"StockAdvisor/internal/usecase"
	xhttp "StockAdvisor/pkg/http"
	xlogger "StockAdvisor/pkg/logger"
	"StockAdvisor/pkg/metrics"
)

type stubMarket struct {
	quoteErr error
}

func (s stubMarket) Quote(_ context.Context, symbol string) (models.Quote, error) {
	if s.quoteErr != nil {
		return models.Quote{}, s.quoteErr
	}
	if symbol != "AAPL" {
		return models.Quote{}, models.NewNotFound("No quote data available")
	}
	return models.Quote{Symbol: "AAPL", Price: models.Float(190), Change: models.Float(1), ChangePercent: models.Float(0.5), Volume: 100}, nil
}

func (s stubMarket) Overview(_ context.Context, symbol string) (models.CompanyOverview, error) {
	if symbol != "AAPL" {
		return models.CompanyOverview{}, models.NewNotFound("No overview data available")
	}
	return models.CompanyOverview{Symbol: "AAPL", Sector: "TECHNOLOGY", PERatio: 20, DividendYield: 0.03, MarketCapitalization: 3e12}, nil
}

func (s stubMarket) Search(_ context.Context, q string) ([]models.SymbolMatch, error) {
	return []models.SymbolMatch{{Symbol: strings.ToUpper(q), Name: "Apple Inc"}}, nil
}

func (s stubMarket) DailyAdjusted(context.Context, string) ([]models.DailyBar, error) {
	return nil, nil
}

func newTestEcho(t *testing.T, market stubMarket, limit RateLimit) *echo.Echo {
	t.Helper()
	log := xlogger.NewNop()
	profiles := usecase.NewProfileService(repository.NewMemoryProfileStore(), log)
	marketSvc := usecase.NewMarketService(market, profiles, []string{"AAPL", "MSFT"}, log)
	explainer := usecase.NewExplainer(market, explain.NewLocalPolisher(),
		cache.NewTTLCache[models.ExplanationRecord](time.Hour), time.Hour, metrics.Nop{}, log)
	watchlist := usecase.NewWatchlistService(repository.NewMemoryWatchlistStore(), repository.NoopBackup{}, metrics.Nop{}, log)

	handlers := []xhttp.Handler{
		NewAdvisorHandler(log, explainer, marketSvc, ratelimit.New(), limit),
		NewMarketHandler(log, marketSvc),
		NewWatchlistHandler(log, watchlist),
		NewProfileHandler(log, profiles),
	}
	return xhttp.NewServer(log, handlers, xhttp.WithMetrics("")).Echo()
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExplain(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	rec := do(e, http.MethodPost, "/api/explain", `{"symbol":"aapl","scoreDetails":[{"reason":"Low P/E relative to cap","impact":14.6}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"source":"local"`)
	assert.Contains(t, rec.Body.String(), `"cached":false`)
	assert.Contains(t, rec.Body.String(), `"impact":15`)

	rec = do(e, http.MethodPost, "/api/explain", `{"symbol":"AAPL","scoreDetails":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cached":true`)
}

func TestExplain_BadBody(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	for _, body := range []string{
		`{"scoreDetails":[]}`,
		`{"symbol":"AAPL"}`,
		`{"symbol":"AAPL","scoreDetails":[{"reason":"x"}]}`,
		`{"symbol":"AAPL","scoreDetails":[{"reason":"x","impact":1e300}]}`,
		`{not json`,
	} {
		rec := do(e, http.MethodPost, "/api/explain", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"error":"Request must include symbol and scoreDetails"`, body)
		assert.Contains(t, rec.Body.String(), `"details"`, body)
	}
}

func TestExplain_UpstreamRateLimited(t *testing.T) {
	e := newTestEcho(t, stubMarket{quoteErr: models.NewRateLimited("Note: call frequency")}, RateLimit{})

	rec := do(e, http.MethodPost, "/api/explain", `{"symbol":"AAPL","scoreDetails":[]}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please retry in a moment.","code":"ERR_RATE_LIMITED"}`, rec.Body.String())
}

func TestExplain_ClientRateLimited(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{Capacity: 1, RefillPerSec: 0.0001})

	rec := do(e, http.MethodPost, "/api/explain", `{"symbol":"AAPL","scoreDetails":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodPost, "/api/explain", `{"symbol":"AAPL","scoreDetails":[]}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestExplain_UpstreamFailure(t *testing.T) {
	e := newTestEcho(t, stubMarket{quoteErr: models.NewUpstream(502, "Alpha Vantage request failed", nil)}, RateLimit{})

	rec := do(e, http.MethodPost, "/api/explain", `{"symbol":"AAPL","scoreDetails":[]}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Alpha Vantage request failed","code":"ERR_UPSTREAM"}`, rec.Body.String())
}

func TestScore(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	rec := do(e, http.MethodPost, "/api/score", `{"snapshot":{"symbol":"KO","peRatio":20,"dividendYield":0.03},"profile":{"risk":"moderate"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"score":26,"reasons":[
		{"reason":"Low P/E relative to cap","impact":15},
		{"reason":"Attractive dividend yield","impact":10},
		{"reason":"Risk profile boost","impact":1}]}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/score", `{"snapshot":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryParamsRequired(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	tests := []struct {
		target string
		msg    string
	}{
		{"/api/quote", "Query parameter 'symbol' is required"},
		{"/api/quote?symbol=%20", "Query parameter 'symbol' is required"},
		{"/api/timeseries", "Query parameter 'symbol' is required"},
		{"/api/card", "Query parameter 'symbol' is required"},
		{"/api/search", "Query parameter 'q' is required"},
	}
	for _, tt := range tests {
		rec := do(e, http.MethodGet, tt.target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.target)
		assert.JSONEq(t, `{"error":"`+tt.msg+`","code":"ERR_BAD_REQUEST"}`, rec.Body.String(), tt.target)
	}
}

func TestQuoteAndNotFound(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	rec := do(e, http.MethodGet, "/api/quote?symbol=aapl", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"peRatio":20`)

	rec = do(e, http.MethodGet, "/api/quote?symbol=ZZZZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No quote data available","code":"ERR_NOT_FOUND"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/timeseries?symbol=AAPL", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No time series data available")
}

func TestScreener(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	rec := do(e, http.MethodGet, "/api/screener?dividendYieldMin=2&sector=technology", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"evaluated":1`)
	assert.Contains(t, rec.Body.String(), `"symbol":"AAPL"`)
}

func TestWatchlistRoutes(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	rec := do(e, http.MethodPost, "/api/watchlist", `{"symbol":"aapl"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"symbol":"AAPL"`)

	rec = do(e, http.MethodPost, "/api/watchlist", `{"symbol":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/watchlist/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Symbol,AddedAt\nAAPL,"))

	rec = do(e, http.MethodDelete, "/api/watchlist/aapl", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProfileRoutes(t *testing.T) {
	e := newTestEcho(t, stubMarket{}, RateLimit{})

	rec := do(e, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"investmentHorizon":"mid","riskProfile":"moderate","preferredSectors":[],"notificationsOptIn":false}`, rec.Body.String())

	rec = do(e, http.MethodPut, "/api/profile", `{"riskProfile":"reckless"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPut, "/api/profile", `{"riskProfile":"aggressive","notificationsOptIn":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"investmentHorizon":"mid","riskProfile":"aggressive","preferredSectors":[],"notificationsOptIn":true}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/profile/sectors/Energy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"preferredSectors":["Energy"]`)

	rec = do(e, http.MethodGet, "/api/card?symbol=AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"risk":"aggressive"`)

	rec = do(e, http.MethodDelete, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"riskProfile":"moderate"`)
}
