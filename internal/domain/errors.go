package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the actor lacks permission for the
	// operation. Distinct from ErrNotFound: the resource exists but the
	// actor may not touch it.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a conditional state transition matched
	// zero rows, i.e. the resource changed under the caller. The client
	// should refetch and retry with current state.
	ErrConflict = errors.New("conflict: resource is no longer in the expected state")
)

// ApprovalIncompleteError reports a promotion that may have partially
// completed: the request row was marked approved but the fate of the event
// row is unknown (e.g. the transaction commit failed after both writes).
// It carries enough detail for an operator to reconcile manually.
type ApprovalIncompleteError struct {
	RequestID string
	EventID   string // empty if the event insert never returned an id
	Err       error
}

func (e *ApprovalIncompleteError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("approval of request %s incomplete, event not created: %v", e.RequestID, e.Err)
	}
	return fmt.Sprintf("approval of request %s incomplete, event %s in unknown state: %v", e.RequestID, e.EventID, e.Err)
}

func (e *ApprovalIncompleteError) Unwrap() error { return e.Err }
