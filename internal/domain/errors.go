package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the hotel search core.
// Validation errors are checked with errors.Is so callers can map them
// to the right response without string matching.
var (
	// ErrInvalidFormat indicates a field value that does not match its
	// required shape (e.g. a date that is not YYYY-MM-DD).
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange indicates a numeric field outside its allowed range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInconsistent indicates a cross-field violation, such as a
	// children_ages list whose length does not match the children count.
	ErrInconsistent = errors.New("inconsistent fields")

	// ErrSearchUnavailable indicates the primary provider call failed or
	// timed out. No partial results are returned alongside this error.
	ErrSearchUnavailable = errors.New("hotel search unavailable")

	// ErrReasoner indicates the reasoner could not produce a usable
	// instruction for the current turn.
	ErrReasoner = errors.New("reasoner failure")

	// ErrConversationNotFound indicates an operation referenced a
	// conversation that has no active session.
	ErrConversationNotFound = errors.New("conversation not found")
)

// ProviderError wraps an error from an upstream provider with the
// provider's name for logging and debugging.
type ProviderError struct {
	Provider string
	Err      error
}

// NewProviderError creates a ProviderError for the given provider.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error so errors.Is/As work through the wrapper.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
