// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package linger

import (
	"runtime"
)

// CheckClean will record a test error if any producers tracked by the
// Recorder are still running. Each producer is reported by the name
// given to [riter.WithName], followed by a snapshot of the stack where
// it was started.
func CheckClean(t TestingT, r *Recorder) {
	running := r.snapshot()
	if len(running) == 0 {
		return
	}

	// Improve error messages if we're being called from a real test.
	if x, ok := t.(interface{ Helper() }); ok {
		x.Helper()
	}

	t.Errorf("lingering producers detected")
	for _, p := range running {
		if p.name == "" {
			t.Errorf("  producer started at:")
		} else {
			t.Errorf("  producer %q started at:", p.name)
		}
		if len(p.stack) == 0 {
			continue
		}
		frames := runtime.CallersFrames(p.stack)
		for {
			frame, more := frames.Next()
			t.Errorf("    %s (%s:%d)", frame.Function, frame.File, frame.Line)
			if !more {
				break
			}
		}
	}
}

// TestingT is the subset of [testing.TB] needed by [CheckClean].
type TestingT interface {
	Errorf(string, ...any)
}
