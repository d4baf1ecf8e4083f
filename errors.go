// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"errors"
	"fmt"
)

var (
	// ErrType is reported when an argument is of the wrong kind, such
	// as a nil predicate or a value that is not a source.
	ErrType = errors.New("invalid argument type")

	// ErrRange is reported when an argument is well-formed but out of
	// range, such as a negative count.
	ErrRange = errors.New("argument out of range")
)

// An ArgumentError is returned when a combinator or constructor rejects
// one of its arguments. The enclosed error is either [ErrType] or
// [ErrRange].
type ArgumentError struct {
	Op  string // The rejecting operation, e.g. "AdvanceBy".
	Arg any    // The rejected value.
	Err error
}

// Error implements error.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Err, describe(e.Arg))
}

// Unwrap returns the enclosed error.
func (e *ArgumentError) Unwrap() error { return e.Err }

func typeError(op string, arg any) error {
	return &ArgumentError{Op: op, Arg: arg, Err: ErrType}
}

func rangeError(op string, arg any) error {
	return &ArgumentError{Op: op, Arg: arg, Err: ErrRange}
}

func describe(arg any) string {
	if arg == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v (%T)", arg, arg)
}
