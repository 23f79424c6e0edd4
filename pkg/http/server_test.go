package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	applogger "StockAdvisor/pkg/logger"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return SuccessResponse(c, map[string]string{"pong": "1"}) })
	e.GET("/boom", func(c echo.Context) error { return BadRequestError("nope") })
	e.GET("/panic", func(c echo.Context) error { panic("kaboom") })
}

func TestServer_Routes(t *testing.T) {
	s := NewServer(applogger.NewNop(), []Handler{pingHandler{}}, WithMetrics(""))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/ping", http.StatusOK, `{"pong":"1"}`},
		{"/healthz", http.StatusOK, `{"status":"ok"}`},
		{"/boom", http.StatusBadRequest, `{"error":"nope","code":"ERR_BAD_REQUEST"}`},
		{"/missing", http.StatusNotFound, `{"error":"Route not found","code":"ERR_NOT_FOUND"}`},
		{"/panic", http.StatusInternalServerError, `{"error":"Unexpected server error","code":"ERR_INTERNAL"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	s := NewServer(applogger.NewNop(), []Handler{RoutesFunc(func(e *echo.Echo) {
		e.POST("/api/explain", func(c echo.Context) error { return NoContentResponse(c) })
	})}, WithMetrics(""), WithCORS(true, "http://localhost:3000"))

	req := httptest.NewRequest(http.MethodOptions, "/api/explain", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
