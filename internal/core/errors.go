package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation  ErrorCategory = "validation"           // invalid input
	ErrCatUnavailable ErrorCategory = "provider_unavailable" // probe or call could not reach the backend
	ErrCatBadResponse ErrorCategory = "bad_response"         // backend answered, but not with what the contract requires
	ErrCatExhausted   ErrorCategory = "exhausted"            // every provider in the chain failed
	ErrCatNotFound    ErrorCategory = "not_found"            // resource does not exist
	ErrCatState       ErrorCategory = "state"                // session in the wrong state for the operation
	ErrCatInternal    ErrorCategory = "internal"             // unexpected internal error
)

// DomainError is a structured error from the domain layer.
type DomainError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Retryable bool
	Cause     error
	Details   map[string]any
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on category and code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && (t.Code == "" || e.Code == t.Code)
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{Category: ErrCatValidation, Code: code, Message: message}
}

// ErrProviderUnavailable creates an unavailable-backend error. Retryable
// against the next provider in the chain, never the same one.
func ErrProviderUnavailable(provider, message string) *DomainError {
	e := &DomainError{
		Category:  ErrCatUnavailable,
		Code:      "PROVIDER_UNAVAILABLE",
		Message:   message,
		Retryable: true,
	}
	return e.WithDetail("provider", provider)
}

// ErrBadResponse creates a malformed-response error.
func ErrBadResponse(code, message string) *DomainError {
	return &DomainError{Category: ErrCatBadResponse, Code: code, Message: message, Retryable: true}
}

// ErrExhausted creates an all-providers-failed error.
func ErrExhausted(message string) *DomainError {
	return &DomainError{Category: ErrCatExhausted, Code: "PROVIDERS_EXHAUSTED", Message: message}
}

// ErrNotFound creates a not-found error for a resource type and id.
func ErrNotFound(resource, id string) *DomainError {
	e := &DomainError{
		Category: ErrCatNotFound,
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s %q not found", resource, id),
	}
	return e.WithDetail("resource", resource).WithDetail("id", id)
}

// ErrState creates a wrong-state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{Category: ErrCatState, Code: code, Message: message}
}

// ErrInternal creates an internal error.
func ErrInternal(message string) *DomainError {
	return &DomainError{Category: ErrCatInternal, Code: "INTERNAL", Message: message}
}

// CategoryOf extracts the error category, or ErrCatInternal for plain errors.
func CategoryOf(err error) ErrorCategory {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Category
	}
	return ErrCatInternal
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return CategoryOf(err) == ErrCatNotFound
}
