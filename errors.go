package ple

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfReference is returned by AddParameter when an operator is
	// added as its own parameter.
	ErrSelfReference = errors.New("an operator cannot contain itself as a parameter")

	// ErrNotFound is returned by name lookups that match no operator.
	ErrNotFound = errors.New("operator not found")

	// ErrAmbiguousName is returned by name lookups that match more
	// than one operator.
	ErrAmbiguousName = errors.New("operator name is ambiguous")
)

// An ArityError reports an operator evaluated with a parameter count
// its kind does not permit. It signals a malformed rule; evaluation of
// the subtree is aborted and the error propagates to the caller.
type ArityError struct {
	Kind  Kind
	Count int

	// Want describes the permitted count, e.g. "exactly 2".
	Want string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s requires %s parameters, got %d", e.Kind, e.Want, e.Count)
}

// A CompileError reports a regular expression pattern that failed to
// compile. It is raised the first time the pattern is compiled: at
// construction when the engine pre-warms its cache, otherwise at first
// evaluation.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
