package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes data as the 200 response body.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// CreatedResponse writes data as the 201 response body.
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// NoContentResponse writes no content response.
func NoContentResponse(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// ValidationErrorResponse writes a 400 with the individual field failures.
func ValidationErrorResponse(c echo.Context, message string, details []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   message,
		Code:    CodeValidation,
		Details: details,
	})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, InternalError("Unexpected server error").Body())
}

// AppErrorResponse writes application error response. Anything that is not
// an *AppError is reported as a generic 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, appErr.Body())
	}
	return InternalServerErrorResponse(c)
}
