package availability

import (
	"errors"
	"fmt"
)

// ErrMalformedSnapshot signals that a rebuild batch contained an inverted
// interval. The index keeps its previous snapshot when this is returned.
var ErrMalformedSnapshot = errors.New("availability: malformed snapshot")

// ErrDateUnavailable signals that a selection click landed on a blocked date.
// The selection is left unchanged so the caller can surface feedback.
var ErrDateUnavailable = errors.New("availability: date unavailable")

// ErrNotReady signals that no snapshot has been applied yet; queries are
// indeterminate and callers should hold interaction rather than guess.
var ErrNotReady = errors.New("availability: index not ready")

// ErrUnknownProperty signals a property ID outside the configured catalog.
var ErrUnknownProperty = errors.New("availability: unknown property")

// SyncError wraps a failure on a property's live subscription. It travels
// through the adapter's side channel only; index queries keep answering with
// the last-known-good snapshot.
type SyncError struct {
	PropertyID string
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("availability sync for %s: %v", e.PropertyID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
