package api

import (
	"github.com/labstack/echo/v4"

	"StockAdvisor/internal/domain/models"
	"StockAdvisor/internal/service/ratelimit"
	"StockAdvisor/internal/services/scoring"
	"StockAdvisor/internal/usecase"
	xhttp "StockAdvisor/pkg/http"
	xlogger "StockAdvisor/pkg/logger"
)

// RateLimit is a token bucket applied per client address.
type RateLimit struct {
	Capacity     float64
	RefillPerSec float64
}

// AdvisorHandler serves scoring, stock cards and explanations.
type AdvisorHandler struct {
	logger    *xlogger.Logger
	explainer *usecase.Explainer
	market    *usecase.MarketService
	limiter   *ratelimit.Limiter
	limit     RateLimit
}

func NewAdvisorHandler(
	logger *xlogger.Logger,
	explainer *usecase.Explainer,
	market *usecase.MarketService,
	limiter *ratelimit.Limiter,
	limit RateLimit,
) *AdvisorHandler {
	return &AdvisorHandler{logger: logger, explainer: explainer, market: market, limiter: limiter, limit: limit}
}

func (h *AdvisorHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/explain", h.Explain)
	g.POST("/score", h.Score)
	g.GET("/card", h.Card)
}

func (h *AdvisorHandler) Explain(c echo.Context) error {
	if !h.limiter.Allow("explain:"+c.RealIP(), h.limit.Capacity, h.limit.RefillPerSec) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError(msgRateLimited))
	}

	req := &models.ExplainRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, "Request must include symbol and scoreDetails", verr)
	}

	res, err := h.explainer.Explain(c.Request().Context(), req.Normalize())
	if err != nil {
		return respondError(c, h.logger, "explain", err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Score runs the scoring engine on a caller supplied snapshot.
func (h *AdvisorHandler) Score(c echo.Context) error {
	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, "Request must include a snapshot with a symbol", verr)
	}
	return xhttp.SuccessResponse(c, scoring.ScoreStock(req.Snapshot, req.Profile))
}

func (h *AdvisorHandler) Card(c echo.Context) error {
	symbol, err := requireQuery(c, "symbol")
	if err != nil {
		return respondError(c, h.logger, "card", err)
	}
	risk := models.RiskLevel(xhttp.QueryTrimmed(c, "risk"))

	card, err := h.market.Card(c.Request().Context(), symbol, risk)
	if err != nil {
		return respondError(c, h.logger, "card", err)
	}
	return xhttp.SuccessResponse(c, card)
}
