package domain

import (
	"errors"
	"fmt"
)

// PersistenceKind classifies a failed write against the store. Every write
// failure maps to exactly one kind.
type PersistenceKind string

const (
	// KindDuplicate is a unique-index violation on a natural key.
	KindDuplicate PersistenceKind = "duplicate"
	// KindReferenced means dependent records block the write, e.g. deleting
	// a book that still has reviews.
	KindReferenced PersistenceKind = "referenced"
	// KindMalformedData is a type, length, or null constraint violation.
	KindMalformedData PersistenceKind = "malformed_data"
	// KindUnavailable means the store could not be reached. The caller may
	// retry after backoff; the core never retries internally.
	KindUnavailable PersistenceKind = "unavailable"
	// KindUnknown is everything else. Logged with full context, surfaced
	// generically.
	KindUnknown PersistenceKind = "unknown"
)

// PersistenceError wraps a store failure with its classification. The
// underlying cause is kept for logging and is never shown to clients.
type PersistenceError struct {
	Kind PersistenceKind
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("persistence: %s", e.Kind)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AsPersistence unwraps err into a *PersistenceError when there is one in
// the chain.
func AsPersistence(err error) (*PersistenceError, bool) {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
