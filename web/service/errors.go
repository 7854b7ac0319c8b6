package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors surfaced by the service layer. Controllers translate them
// into HTTP status codes.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the two cases stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrAccountDisabled is returned when the credentials are correct but the
	// account is inactive.
	ErrAccountDisabled = errors.New("User account is disabled")

	// ErrNotOwner marks a mutation attempted by an authenticated caller who
	// does not own the resource.
	ErrNotOwner = errors.New("not the owner of this resource")
)

// ValidationError carries field-keyed messages for malformed or duplicate
// input, mirroring the 400 payload shape of the API.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return strings.Join(parts, ", ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
