package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"StockAdvisor/internal/domain/models"
	"StockAdvisor/internal/usecase"
	xhttp "StockAdvisor/pkg/http"
	xlogger "StockAdvisor/pkg/logger"
)

type WatchlistHandler struct {
	logger    *xlogger.Logger
	watchlist *usecase.WatchlistService
}

func NewWatchlistHandler(logger *xlogger.Logger, watchlist *usecase.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{logger: logger, watchlist: watchlist}
}

func (h *WatchlistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/watchlist")
	g.GET("", h.List)
	g.POST("", h.Add)
	g.GET("/export", h.Export)
	g.DELETE("/:symbol", h.Remove)
}

func (h *WatchlistHandler) List(c echo.Context) error {
	entries, err := h.watchlist.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "watchlist list", err)
	}
	return xhttp.SuccessResponse(c, entries)
}

func (h *WatchlistHandler) Add(c echo.Context) error {
	req := &models.WatchlistAddRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, "Symbol is required", verr)
	}
	entries, err := h.watchlist.Add(c.Request().Context(), req.Symbol)
	if err != nil {
		return respondError(c, h.logger, "watchlist add", err)
	}
	return xhttp.CreatedResponse(c, entries)
}

func (h *WatchlistHandler) Remove(c echo.Context) error {
	entries, err := h.watchlist.Remove(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return respondError(c, h.logger, "watchlist remove", err)
	}
	return xhttp.SuccessResponse(c, entries)
}

func (h *WatchlistHandler) Export(c echo.Context) error {
	csv, err := h.watchlist.ExportCSV(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "watchlist export", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="watchlist.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
