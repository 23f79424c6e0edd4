package http

import (
	"fmt"
	"net/http"
)

// Error codes carried in ErrorBody.Code.
const (
	CodeBadRequest       = "ERR_BAD_REQUEST"
	CodeValidation       = "ERR_VALIDATION"
	CodeNotFound         = "ERR_NOT_FOUND"
	CodeRateLimited      = "ERR_RATE_LIMITED"
	CodeUpstream         = "ERR_UPSTREAM"
	CodeInternal         = "ERR_INTERNAL"
	CodeMethodNotAllowed = "ERR_METHOD_NOT_ALLOWED"
)

// AppError is an error that knows how it should be rendered to a client.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Body is the JSON envelope written for e.
func (e *AppError) Body() ErrorBody {
	return ErrorBody{Error: e.Message, Code: e.Code}
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// WithError attaches the cause. It is logged, never rendered.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

func BadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message)
}

func BadRequestErrorf(format string, a ...interface{}) *AppError {
	return BadRequestError(fmt.Sprintf(format, a...))
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimited, message)
}

// StatusError relays a status decided elsewhere, typically by an upstream
// API. 5xx statuses other than 502 are reported as internal.
func StatusError(status int, message string) *AppError {
	code := CodeUpstream
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		code = CodeInternal
	}
	return NewAppError(status, code, message)
}

func InternalError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, message)
}

func MethodNotAllowedError() *AppError {
	return NewAppError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
}
