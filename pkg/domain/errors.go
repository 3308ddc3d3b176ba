package domain

import (
	"errors"
	"fmt"
)

// ErrNoData indicates that neither the persisted collection nor the artifact
// fallback held any participant records. Distinct from a connectivity
// failure: the read path completed and found nothing.
var ErrNoData = errors.New("no participant data found")

// ConnectivityError wraps a failure to reach the document store or to read
// the artifact. It is surfaced as a failed result with the operation that
// broke, never masked as an empty success.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e ConnectivityError) Unwrap() error { return e.Err }

// ValidationError reports malformed input rejected before any I/O.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// HydrationError records a best-effort write-back of artifact-sourced
// records that failed. The read still succeeds; this exists so the failure
// is observable instead of vanishing into a log line.
type HydrationError struct {
	Attempted int
	Err       error
}

func (e HydrationError) Error() string {
	return fmt.Sprintf("hydrating %d records into %s: %v", e.Attempted, CollectionName, e.Err)
}

func (e HydrationError) Unwrap() error { return e.Err }
