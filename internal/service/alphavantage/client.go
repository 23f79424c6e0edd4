package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	"StockAdvisor/internal/service/cache"
	xhttp "StockAdvisor/pkg/http"
	applogger "StockAdvisor/pkg/logger"
)

const DefaultBaseURL = "https://www.alphavantage.co/query"

const defaultBurst = 5

type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
	CacheTTL          time.Duration
}

// Client implements repository.MarketData against the Alpha Vantage REST API.
// Successful payloads are memoized in a BytesCache and outgoing calls are
// throttled to the configured request rate.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *rate.Limiter
	cache   cache.BytesCache
	metrics drepo.Metrics
	log     *applogger.Logger
}

var _ drepo.MarketData = (*Client)(nil)

// New creates an Alpha Vantage client.
func New(cfg Config, c cache.BytesCache, m drepo.Metrics, l *applogger.Logger, opts ...xhttp.ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout > 0 {
		opts = append([]xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}, opts...)
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	}
	return &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(opts...),
		limiter: rate.NewLimiter(limit, defaultBurst),
		cache:   c,
		metrics: m,
		log:     l.With(applogger.String("component", "alphavantage")),
	}
}

// fetch returns the raw JSON payload for one API function. The API key is
// kept out of the cache key.
func (c *Client) fetch(ctx context.Context, function string, params url.Values) ([]byte, error) {
	if c.cfg.APIKey == "" {
		c.metrics.RecordUpstreamCall(function, string(models.KindConfig))
		return nil, models.NewConfigError("Missing Alpha Vantage API key")
	}

	params.Set("function", function)
	cacheKey := "alpha:" + params.Encode()

	if b, ok, err := c.cache.GetBytes(ctx, cacheKey); err != nil {
		c.log.Warn("cache read failed", applogger.String("key", cacheKey), applogger.Error(err))
	} else if ok {
		c.metrics.RecordUpstreamCall(function, "hit")
		return b, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.RecordUpstreamCall(function, string(models.KindUpstream))
		return nil, models.NewUpstream(http.StatusServiceUnavailable, "Alpha Vantage request cancelled", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apikey", c.cfg.APIKey)

	start := time.Now()
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL,
		Query:  query,
	}, &body)
	c.metrics.RecordLatency("alphavantage."+function, time.Since(start).Seconds())
	if err != nil {
		mde := classify(err)
		c.metrics.RecordUpstreamCall(function, string(mde.Kind))
		c.log.Warn("alpha vantage request failed",
			applogger.String("function", function),
			applogger.Int("status", mde.Status),
			applogger.Error(err),
		)
		return nil, mde
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		c.metrics.RecordUpstreamCall(function, string(models.KindUpstream))
		return nil, models.NewUpstream(http.StatusBadGateway, "Alpha Vantage returned a malformed payload", err)
	}
	_, note := top["Note"]
	_, info := top["Information"]
	if note || info {
		c.metrics.RecordUpstreamCall(function, string(models.KindRateLimited))
		return nil, models.NewRateLimited("Alpha Vantage rate limit exceeded")
	}

	if err := c.cache.SetBytes(ctx, cacheKey, body, c.cfg.CacheTTL); err != nil {
		c.log.Warn("cache write failed", applogger.String("key", cacheKey), applogger.Error(err))
	}
	c.metrics.RecordUpstreamCall(function, "ok")
	return body, nil
}

func classify(err error) *models.MarketDataError {
	var re *xhttp.ResponseError
	if errors.As(err, &re) {
		if re.StatusCode == http.StatusTooManyRequests {
			return models.NewRateLimited("Alpha Vantage rate limit exceeded")
		}
		return models.NewUpstream(re.StatusCode, "Alpha Vantage request failed", err)
	}
	return models.NewUpstream(http.StatusBadGateway, "Alpha Vantage request failed", err)
}
