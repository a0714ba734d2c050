package core

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the tool-boundary taxonomy. Tools convert all of
// these into user-facing explanatory text; none propagate to the runner as
// turn failures.
var (
	// ErrNotFound reports an unknown user id.
	ErrNotFound = errors.New("not found")

	// ErrNoData reports a valid query with an empty result. It is an
	// expected outcome, not a failure.
	ErrNoData = errors.New("no data")
)

// StoreError wraps an underlying persistence failure. Operations either
// commit fully or surface a StoreError; partial writes never occur.
type StoreError struct {
	Op  string // store operation that failed, e.g. "insert glucose reading"
	Err error  // underlying cause
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err with the failing operation name.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
