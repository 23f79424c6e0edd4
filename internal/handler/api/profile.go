package api

import (
	"github.com/labstack/echo/v4"

	"StockAdvisor/internal/domain/models"
	"StockAdvisor/internal/usecase"
	xhttp "StockAdvisor/pkg/http"
	xlogger "StockAdvisor/pkg/logger"
)

type ProfileHandler struct {
	logger   *xlogger.Logger
	profiles *usecase.ProfileService
}

func NewProfileHandler(logger *xlogger.Logger, profiles *usecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/profile")
	g.GET("", h.Get)
	g.PUT("", h.Update)
	g.DELETE("", h.Reset)
	g.POST("/sectors/:sector", h.ToggleSector)
}

func (h *ProfileHandler) Get(c echo.Context) error {
	form, err := h.profiles.Get(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "profile get", err)
	}
	return xhttp.SuccessResponse(c, form)
}

// Update replaces the profile. Fields missing from the body take their defaults.
func (h *ProfileHandler) Update(c echo.Context) error {
	req := &models.ProfileForm{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, "Invalid profile", verr)
	}
	form, err := h.profiles.Update(c.Request().Context(), *req)
	if err != nil {
		return respondError(c, h.logger, "profile update", err)
	}
	return xhttp.SuccessResponse(c, form)
}

func (h *ProfileHandler) Reset(c echo.Context) error {
	form, err := h.profiles.Reset(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "profile reset", err)
	}
	return xhttp.SuccessResponse(c, form)
}

func (h *ProfileHandler) ToggleSector(c echo.Context) error {
	form, err := h.profiles.ToggleSector(c.Request().Context(), c.Param("sector"))
	if err != nil {
		return respondError(c, h.logger, "profile sector", err)
	}
	return xhttp.SuccessResponse(c, form)
}
