package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the issue service.
var (
	ErrNetwork    = errors.New("network error")
	ErrNotFound   = errors.New("issue not found")
	ErrValidation = errors.New("validation error")
	ErrServer     = errors.New("server error")
)

// Domain errors.
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyID          = errors.New("issue id cannot be empty")
	ErrInvalidStatus    = errors.New("invalid status (want Open, In Progress or Closed)")
	ErrInvalidPriority  = errors.New("invalid priority (want Low, Medium or High)")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order (want asc or desc)")
	ErrInvalidPage      = errors.New("page must be at least 1")
	ErrInvalidPageSize  = errors.New("page size must be at least 1")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrNoBaseURL        = errors.New("api base URL is not configured")
	ErrConfigExists     = errors.New("config file already exists")
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoIssuesInFile   = errors.New("no issues found in file")
	ErrNoIdentity       = errors.New("git user.name is not configured")
)

// APIError describes a failed call to the issue API.
// errors.Is(err, ErrNotFound) and friends match on Kind.
type APIError struct {
	Err        error  // Underlying transport or decode error, if any
	Kind       error  // One of ErrNetwork, ErrNotFound, ErrValidation, ErrServer
	Method     string // HTTP method
	Path       string // Request path
	Detail     string // Server-provided detail message
	StatusCode int    // HTTP status (0 for transport failures)
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error kind of e.
func (e *APIError) Is(target error) bool {
	return e.Kind == target
}

// KindOf returns the error kind of err, or nil if err is not an API error.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrValidation, ErrServer, ErrNetwork} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
