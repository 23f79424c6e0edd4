package models

import (
	"errors"
	"fmt"
	"net/http"
)

type MarketDataErrorKind string

const (
	KindNotFound    MarketDataErrorKind = "not_found"
	KindRateLimited MarketDataErrorKind = "rate_limited"
	KindUpstream    MarketDataErrorKind = "upstream"
	KindConfig      MarketDataErrorKind = "config"
)

// MarketDataError is returned by market data providers. Status is the HTTP
// status the failure should surface as.
type MarketDataError struct {
	Kind    MarketDataErrorKind
	Status  int
	Message string
	Err     error
}

func (e *MarketDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MarketDataError) Unwrap() error { return e.Err }

func NewNotFound(message string) *MarketDataError {
	return &MarketDataError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func NewRateLimited(message string) *MarketDataError {
	return &MarketDataError{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: message}
}

func NewUpstream(status int, message string, err error) *MarketDataError {
	if status < 400 {
		status = http.StatusBadGateway
	}
	return &MarketDataError{Kind: KindUpstream, Status: status, Message: message, Err: err}
}

func NewConfigError(message string) *MarketDataError {
	return &MarketDataError{Kind: KindConfig, Status: http.StatusInternalServerError, Message: message}
}

// IsKind reports whether err carries a MarketDataError of the given kind.
func IsKind(err error, kind MarketDataErrorKind) bool {
	var mde *MarketDataError
	return errors.As(err, &mde) && mde.Kind == kind
}

// InvalidInputError reports caller input a usecase rejected.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

var ErrSymbolRequired = &InvalidInputError{Message: "Symbol is required"}
