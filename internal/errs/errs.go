// Package errs defines the error taxonomy shared by the resource
// services and mapped to HTTP at the API boundary.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated: no token, or an invalid/expired/revoked one.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden: a valid actor attempting a disallowed action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: the id does not resolve to a visible record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials: login failure. Deliberately does not say
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError collects every violated field of a request, not just
// the first one.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (v *ValidationError) Add(field, msg string) {
	v.Fields[field] = append(v.Fields[field], msg)
}

// Err returns v as an error, or nil when no field was violated.
func (v *ValidationError) Err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, strings.Join(v.Fields[f], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
