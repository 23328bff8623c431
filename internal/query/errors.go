package query

import (
	"errors"
	"fmt"
)

// Clause validation errors. All of these abort the invocation before any
// backend call is issued.
var (
	// ErrMalformedClause indicates a where or order string that does not
	// split into the required comma-separated segments.
	ErrMalformedClause = errors.New("malformed clause")

	// ErrInvalidDirection indicates an order direction other than asc/desc.
	ErrInvalidDirection = errors.New("invalid order direction")

	// ErrInvalidLimit indicates a non-numeric or non-positive limit.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrUnsupportedOperator indicates an operator with no native or
	// post-processing equivalent on the target backend.
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// BackendError wraps a failure from the native backend call. The
// underlying message is preserved verbatim for diagnostics (permission
// denials and missing-index errors carry remediation hints from the
// service). A single failed call is terminal for the invocation.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
