// Package core holds small types shared across the solver packages that
// don't belong to any one of them: the invariant-violation error used when
// the solving core detects it has reached a state the algorithm considers
// impossible.
package core

import "fmt"

// InvariantError reports that an internal invariant of the solver was
// violated — a bug in the solver itself, never a malformed input. Constructing
// a Model over an unsatisfying assignment, finding no unresolved literal at
// the end of conflict analysis, and similar "this cannot happen" conditions
// are reported this way so callers can distinguish them from ordinary parse
// or usage errors.
type InvariantError struct {
	Component string
	Message   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated in %s: %s", e.Component, e.Message)
}

// NewInvariantError builds an InvariantError for the given component.
func NewInvariantError(component, message string) *InvariantError {
	return &InvariantError{Component: component, Message: message}
}

// NewInvariantErrorf is NewInvariantError with fmt.Sprintf-style formatting.
func NewInvariantErrorf(component, format string, args ...any) *InvariantError {
	return &InvariantError{Component: component, Message: fmt.Sprintf(format, args...)}
}
