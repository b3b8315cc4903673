// Package apierror defines the error envelopes every 4xx/5xx response uses.
// Handlers never write raw error strings: everything user-facing passes
// through here, so internals (SQL errors, stack traces) never leak.
package apierror

// APIError carries a single human-readable message in Portuguese.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError maps each offending field to the validator tag it broke.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
