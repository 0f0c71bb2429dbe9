package bridge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Mapping errors
	ErrDuplicateMapping  = errors.New("bridge: mapping already exists for this entity")
	ErrInvalidEntityKind = errors.New("bridge: invalid entity kind")
	ErrInvalidLocalID    = errors.New("bridge: local ID cannot be empty")
	ErrInvalidExternalID = errors.New("bridge: external ID cannot be empty")

	// Reference codec errors
	ErrInvalidRef = errors.New("bridge: malformed reference annotation")

	// Graph builder errors
	ErrInvalidListing = errors.New("bridge: listing cannot be mapped to an exchange graph")

	// Graph client errors
	ErrCapabilityUnavailable = errors.New("bridge: optional read capability unavailable")
)

// UnsatisfiedError signals that one or more prerequisite mappings are absent.
// It is a control-flow signal, not a failure: the reconciliation engine
// responds by enqueueing the listing, and it is never surfaced to end users.
// Every missing category is reported, not just the first.
type UnsatisfiedError struct {
	Missing []MissingCategory
}

// Error implements the error interface
func (e *UnsatisfiedError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = string(m)
	}
	return "bridge: prerequisites unsatisfied: missing " + strings.Join(parts, ", ")
}

// Has reports whether the given category is among the missing ones
func (e *UnsatisfiedError) Has(category MissingCategory) bool {
	for _, m := range e.Missing {
		if m == category {
			return true
		}
	}
	return false
}

// IsUnsatisfied reports whether err is (or wraps) an UnsatisfiedError
func IsUnsatisfied(err error) bool {
	var u *UnsatisfiedError
	return errors.As(err, &u)
}

// GraphError wraps a failure from the external graph service: network
// failures, schema mismatches, validation rejections. Distinct from
// UnsatisfiedError so real integration failures are never masked as
// pending-prerequisite noise.
type GraphError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *GraphError) Error() string {
	return fmt.Sprintf("bridge: graph %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *GraphError) Unwrap() error {
	return e.Err
}

// NewGraphError wraps err as a GraphError for the named operation
func NewGraphError(op string, err error) *GraphError {
	return &GraphError{Op: op, Err: err}
}

// IsGraphError reports whether err is (or wraps) a GraphError
func IsGraphError(err error) bool {
	var g *GraphError
	return errors.As(err, &g)
}
