package booking

import (
	"errors"
	"fmt"
)

// Validation error codes surfaced to the storefront. These are user-correctable:
// the selection stays untouched so the user can fix it and resubmit.
const (
	CodeEmptySelection = "emptySelection"
	CodeNoDate         = "noDate"
	CodeMultipleCourts = "multipleCourts"
	CodeNonContiguous  = "nonContiguous"
)

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewMultipleCourtsError() error {
	return &ValidationError{
		Code:    CodeMultipleCourts,
		Message: "all selected slots must belong to the same court",
	}
}

func NewNonContiguousError() error {
	return &ValidationError{
		Code:    CodeNonContiguous,
		Message: "selected slots must form one contiguous block (e.g. 15:00-15:30, 15:30-16:00)",
	}
}

// FetchError wraps a failed or stale load from the court API. It is surfaced
// to the user as a non-blocking notice; prior grid state is retained.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrSessionNotFound is returned when a selection session is missing or expired.
var ErrSessionNotFound = errors.New("selection session not found or expired")

// ErrStaleSnapshot is returned when a snapshot's echoed (group, date) pair no
// longer matches the requested scope.
var ErrStaleSnapshot = errors.New("snapshot does not match requested group and date")
