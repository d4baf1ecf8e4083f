// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package safe runs user-provided producer code on goroutines that the
// caller cannot otherwise observe, turning panics into errors.
package safe

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const captureDepth = 32

// A RecoveredError associates a recovered panic with the stack at the
// point where it was recovered.
type RecoveredError struct {
	Err   error
	Stack []uintptr
}

// Error implements error.
func (e *RecoveredError) Error() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "recovered: %v\n", e.Err)
	frames := runtime.CallersFrames(e.Stack)
	for {
		frame, more := frames.Next()
		_, _ = fmt.Fprintf(&sb, "%s ( %s:%d )\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}

// Unwrap returns the recovered error.
func (e *RecoveredError) Unwrap() error { return e.Err }

// CallE executes the function. If the function panics, the recovered
// value is joined with any error already set and wrapped in a
// [RecoveredError].
func CallE(fn func() error) (err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
			return
		case error:
			err = errors.Join(err, r)
		default:
			err = errors.Join(err, fmt.Errorf("panic: %v", r))
		}
		stack := make([]uintptr, captureDepth)
		stack = stack[:runtime.Callers(2, stack)]
		err = &RecoveredError{
			Err:   err,
			Stack: stack,
		}
	}()
	return fn()
}
