package domain

import (
	"errors"
	"fmt"
)

// Common engine errors.
var (
	// ErrObligationNotFound is returned when the requested obligation does
	// not exist in the store.
	ErrObligationNotFound = errors.New("obligation: not found")

	// ErrStaleWrite is returned by a store when the optimistic status
	// precondition failed: a concurrent writer already advanced the
	// obligation. Callers treat it as a no-op success, the desired end
	// state has already been reached.
	ErrStaleWrite = errors.New("obligation: stale write, status already advanced")
)

// MalformedObligationError reports a required obligation field that is
// missing or out of range. It is surfaced per obligation and must never
// abort a batch run over other obligations.
type MalformedObligationError struct {
	ObligationID string
	Field        string
	Reason       string
}

func (e *MalformedObligationError) Error() string {
	return fmt.Sprintf("malformed obligation %s: field %s %s", e.ObligationID, e.Field, e.Reason)
}

// MalformedTransactionError reports an invalid transaction record, scoped to
// the obligation whose reconciliation it blocks.
type MalformedTransactionError struct {
	TransactionID string
	ObligationID  string
	Reason        string
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("malformed transaction %s for obligation %s: %s", e.TransactionID, e.ObligationID, e.Reason)
}

// UnresolvedRateTierError is returned when the rate resolver has no tier for
// a duration and its fallback is disabled. Distinguishable from a legitimate
// zero rate.
type UnresolvedRateTierError struct {
	DurationDays int
}

func (e *UnresolvedRateTierError) Error() string {
	return fmt.Sprintf("no interest rate tier for duration of %d days", e.DurationDays)
}
