package http

// ErrorBody is written for every failed request.
type ErrorBody struct {
	Error   string            `json:"error" example:"Rate limit exceeded. Please retry in a moment."`
	Code    string            `json:"code" example:"ERR_RATE_LIMITED"`
	Details []ValidationError `json:"details,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"symbol"`
	Message string                 `json:"message,omitempty" example:"symbol is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
