package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	xutil "StockAdvisor/pkg/util"
)

// QueryFloat reads an optional numeric query parameter. Empty or
// unparseable values are treated as absent.
func QueryFloat(c echo.Context, name string) *float64 { return xutil.ParseFloatPtr(c.QueryParam(name)) }

// QueryList splits a comma separated query parameter, dropping blanks.
func QueryList(c echo.Context, name string) []string { return xutil.SplitList(c.QueryParam(name)) }

// QueryTrimmed returns a query parameter without surrounding whitespace.
func QueryTrimmed(c echo.Context, name string) string { return strings.TrimSpace(c.QueryParam(name)) }
