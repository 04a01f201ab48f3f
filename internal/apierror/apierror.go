// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}

// Domain error taxonomy. Services wrap these with %w plus a human-readable
// message; handlers translate them to HTTP via Status.
var (
	ErrNotFound             = errors.New("não encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInsufficientStock    = errors.New("estoque insuficiente")
	ErrDatastoreUnavailable = errors.New("banco de dados não disponível")
)

// Status maps a domain error to its HTTP status code.
// Anything outside the taxonomy is an unexpected failure → 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ErrDatastoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
