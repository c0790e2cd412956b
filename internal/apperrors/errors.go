package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAuthenticationRequired indicates that an operation needs a session identity and none is available.
var ErrAuthenticationRequired = errors.New("authentication required")

// ErrServer indicates that the valuation backend answered with a non-2xx status.
var ErrServer = errors.New("valuation backend error")

// ErrInvalidServerResponse indicates a 2xx backend answer that is not JSON.
var ErrInvalidServerResponse = errors.New("the server returned an invalid response")

// ValidationError carries field-level violations keyed by the json field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from a field -> message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ServerError is a non-2xx answer from the valuation backend.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Unwrap maps 404 answers to ErrNotFound so callers can render the not-found state.
func (e *ServerError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrServer
}

// FieldErrors extracts the field map from err, or nil if err is not a validation error.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
