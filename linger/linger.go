// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package linger reports where lingering producer goroutines were
// started.
//
// Attach a [Recorder] to [riter.Generate] with [riter.WithInvoker] and
// call [CheckClean] at the end of a test to verify that every producer
// has exited, i.e. that every abandoned source was closed.
package linger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"vawter.tech/riter"
)

// Skips runtime.Callers and Recorder.Invoke.
const callersOffset = 2

// NewRecorder constructs a [Recorder] that samples the call stack at the
// requested depth. The sampled stack begins inside the riter package,
// at the point where the producer goroutine is started; a depth of 6
// or more generally reaches the code that made the first pull.
func NewRecorder(depth int) *Recorder {
	return &Recorder{depth: depth}
}

// A Recorder records the call stack where producer goroutines were
// started, for as long as they run.
type Recorder struct {
	counter atomic.Uintptr
	data    sync.Map // uintptr -> producer
	depth   int
}

// producer is the record kept for a running producer. The name is
// empty until the producer goroutine has begun executing.
type producer struct {
	name  string
	stack []uintptr
}

// Callers returns a snapshot of the stacks associated with producers
// that are currently running.
func (r *Recorder) Callers() [][]uintptr {
	var ret [][]uintptr
	for _, p := range r.snapshot() {
		ret = append(ret, p.stack)
	}
	return ret
}

// Names returns the [riter.WithName] names of the producers that are
// currently running, in no particular order.
func (r *Recorder) Names() []string {
	var ret []string
	for _, p := range r.snapshot() {
		ret = append(ret, p.name)
	}
	return ret
}

func (r *Recorder) snapshot() []producer {
	var ret []producer
	r.data.Range(func(_, value any) bool {
		ret = append(ret, value.(producer))
		return true
	})
	return ret
}

// Len returns the number of producers that are currently running.
func (r *Recorder) Len() int {
	n := 0
	r.data.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Invoke is a [riter.Invoker] that samples the caller.
func (r *Recorder) Invoke(task riter.Task) riter.Task {
	pc := make([]uintptr, r.depth)
	pc = pc[:runtime.Callers(callersOffset, pc)]

	id := r.counter.Add(1)
	r.data.Store(id, producer{stack: pc})

	return func(ctx context.Context) error {
		r.data.Store(id, producer{name: riter.ProducerName(ctx), stack: pc})
		defer r.data.Delete(id)
		return task(ctx)
	}
}
