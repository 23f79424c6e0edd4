package api

import (
	"github.com/labstack/echo/v4"

	"StockAdvisor/internal/domain/models"
	"StockAdvisor/internal/usecase"
	xhttp "StockAdvisor/pkg/http"
	xlogger "StockAdvisor/pkg/logger"
)

type MarketHandler struct {
	logger *xlogger.Logger
	market *usecase.MarketService
}

func NewMarketHandler(logger *xlogger.Logger, market *usecase.MarketService) *MarketHandler {
	return &MarketHandler{logger: logger, market: market}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/quote", h.Quote)
	g.GET("/search", h.Search)
	g.GET("/timeseries", h.TimeSeries)
	g.GET("/screener", h.Screener)
}

func (h *MarketHandler) Quote(c echo.Context) error {
	symbol, err := requireQuery(c, "symbol")
	if err != nil {
		return respondError(c, h.logger, "quote", err)
	}
	res, err := h.market.Quote(c.Request().Context(), symbol)
	if err != nil {
		return respondError(c, h.logger, "quote", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Search(c echo.Context) error {
	q, err := requireQuery(c, "q")
	if err != nil {
		return respondError(c, h.logger, "search", err)
	}
	res, err := h.market.Search(c.Request().Context(), q)
	if err != nil {
		return respondError(c, h.logger, "search", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) TimeSeries(c echo.Context) error {
	symbol, err := requireQuery(c, "symbol")
	if err != nil {
		return respondError(c, h.logger, "timeseries", err)
	}
	res, err := h.market.TimeSeries(c.Request().Context(), symbol)
	if err != nil {
		return respondError(c, h.logger, "timeseries", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Screener(c echo.Context) error {
	filters := models.ScreenerFilters{
		PEMin:            xhttp.QueryFloat(c, "peMin"),
		PEMax:            xhttp.QueryFloat(c, "peMax"),
		DividendYieldMin: xhttp.QueryFloat(c, "dividendYieldMin"),
		DividendYieldMax: xhttp.QueryFloat(c, "dividendYieldMax"),
		MarketCapMin:     xhttp.QueryFloat(c, "marketCapMin"),
		MarketCapMax:     xhttp.QueryFloat(c, "marketCapMax"),
		Sector:           xhttp.QueryTrimmed(c, "sector"),
	}
	res := h.market.Screener(c.Request().Context(), xhttp.QueryList(c, "symbols"), filters)
	return xhttp.SuccessResponse(c, res)
}
