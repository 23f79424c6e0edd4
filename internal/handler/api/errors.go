package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"StockAdvisor/internal/domain/models"
	xhttp "StockAdvisor/pkg/http"
	xlogger "StockAdvisor/pkg/logger"
)

const msgRateLimited = "Rate limit exceeded. Please retry in a moment."

// toAppError maps usecase failures onto the HTTP error envelope. Errors of
// unknown type stay nil.
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var invalid *models.InvalidInputError
	if errors.As(err, &invalid) {
		return xhttp.BadRequestError(invalid.Message)
	}
	var mde *models.MarketDataError
	if !errors.As(err, &mde) {
		return nil
	}
	switch mde.Kind {
	case models.KindRateLimited:
		return xhttp.TooManyRequestsError(msgRateLimited)
	case models.KindNotFound:
		return xhttp.NotFoundError(mde.Message)
	default:
		return xhttp.StatusError(mde.Status, mde.Message)
	}
}

// respondError writes err and logs anything that is not an expected client
// or upstream failure.
func respondError(c echo.Context, log *xlogger.Logger, op string, err error) error {
	appErr := toAppError(err)
	if appErr == nil {
		log.Error(op+" failed", xlogger.Error(err), xlogger.String("path", c.Path()))
		return xhttp.InternalServerErrorResponse(c)
	}
	if appErr.Status >= 500 {
		log.Warn(op+" failed", xlogger.Error(err), xlogger.Int("status", appErr.Status))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func requireQuery(c echo.Context, name string) (string, error) {
	v := xhttp.QueryTrimmed(c, name)
	if v == "" {
		return "", xhttp.BadRequestErrorf("Query parameter '%s' is required", name)
	}
	return v, nil
}
