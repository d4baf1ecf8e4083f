// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"context"
	"errors"
	"io"
	"runtime/trace"
	"sync"

	"vawter.tech/riter/internal/safe"
)

// A Producer drives a [Generate] source. Each call to yield blocks
// until the value has been pulled and another pull has been requested.
// The yield function returns a non-nil error once the source has been
// closed, in which case the Producer should return promptly.
//
// Returning a non-nil error causes the pull in progress to fail with
// that error. Returning nil exhausts the source.
type Producer[T any] func(ctx context.Context, yield func(T) error) error

// A Task is the goroutine body that runs a [Producer].
type Task func(ctx context.Context) error

// An Invoker decorates the [Task] that runs a [Producer], e.g. to record
// where it was started. See the linger package.
type Invoker func(task Task) Task

// A GenerateOption configures [Generate].
type GenerateOption func(cfg *generateConfig)

// WithInvoker decorates the producer task. Invokers are applied in the
// order given, so the first one is outermost.
func WithInvoker(inv Invoker) GenerateOption {
	return func(cfg *generateConfig) {
		if inv != nil {
			cfg.invokers = append(cfg.invokers, inv)
		}
	}
}

// WithName sets the name of the [trace.Task] that is created when the
// producer starts.
func WithName(name string) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.name = name
	}
}

type producerNameKey struct{}

// ProducerName returns the name given to [WithName] when called from
// within a running [Producer] or [Invoker]-decorated [Task]. It returns
// the empty string for any other context.
func ProducerName(ctx context.Context) string {
	name, _ := ctx.Value(producerNameKey{}).(string)
	return name
}

type generateConfig struct {
	invokers []Invoker
	name     string
}

func (c *generateConfig) Sanitize() {
	if c.name == "" {
		c.name = "riter.Generate"
	}
}

// ErrClosed is returned by a [Producer]'s yield function once the source
// has been closed.
var ErrClosed = errors.New("source closed")

// Generate returns an AsyncIter whose values are produced by fn running
// on its own goroutine. The goroutine is started by the first pull and
// runs in lock-step with the consumer: fn only makes progress while a
// pull is waiting for a value, so nothing is computed ahead of demand.
//
// The context passed to fn is derived from ctx and is canceled when the
// AsyncIter is closed. A pull whose own context is canceled returns
// early, and the value being produced for it is delivered to the next
// pull instead. A panic in fn is reported as a failed pull. Call
// [AsyncIter.Close] to stop the goroutine if the AsyncIter is abandoned
// before exhaustion.
func Generate[T any](ctx context.Context, fn Producer[T], opts ...GenerateOption) *AsyncIter[T] {
	if fn == nil {
		panic(typeError("Generate", fn))
	}
	cfg := &generateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Sanitize()

	ctx, cancel := context.WithCancelCause(ctx)
	return NewAsync[T](&generator[T]{
		cancel:   cancel,
		cfg:      cfg,
		ctx:      ctx,
		finished: make(chan struct{}),
		fn:       fn,
		req:      make(chan struct{}),
		resp:     make(chan T),
	})
}

// generator hands values from a producer goroutine to the consumer. The
// consumer sends on req to ask for a value and then receives on resp or
// observes the goroutine exiting. The producer only runs between those
// two steps.
type generator[T any] struct {
	cancel   context.CancelCauseFunc
	cfg      *generateConfig
	ctx      context.Context // Producer context.
	finished chan struct{}   // Closed when the goroutine exits.
	fn       Producer[T]
	req      chan struct{}
	resp     chan T

	closeOnce sync.Once
	done      bool  // Sticky exhaustion.
	err       error // Set by the goroutine before finished is closed.
	pending   bool  // A request has been sent, but not answered.
	started   bool
}

var (
	_ AsyncIterator[any] = (*generator[any])(nil)
	_ io.Closer          = (*generator[any])(nil)
)

func (g *generator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if g.done {
		return zero, false, nil
	}
	if !g.started {
		g.started = true
		g.start()
	}
	if !g.pending {
		select {
		case g.req <- struct{}{}:
			g.pending = true
		case <-g.finished:
			return zero, false, g.finish()
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
	select {
	case v := <-g.resp:
		g.pending = false
		return v, true, nil
	case <-g.finished:
		return zero, false, g.finish()
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// Close cancels the producer and waits for its goroutine to exit.
func (g *generator[T]) Close() error {
	g.closeOnce.Do(func() {
		g.cancel(ErrClosed)
		if !g.started {
			close(g.finished)
		}
	})
	<-g.finished
	g.done = true
	return nil
}

// finish marks the source as exhausted once the goroutine has exited
// and returns the producer's error, if any.
func (g *generator[T]) finish() error {
	g.done = true
	g.pending = false
	if errors.Is(g.err, ErrClosed) {
		return nil
	}
	return g.err
}

func (g *generator[T]) start() {
	var task Task = g.run
	for i := len(g.cfg.invokers) - 1; i >= 0; i-- {
		task = g.cfg.invokers[i](task)
	}

	go func() {
		defer close(g.finished)

		ctx, traceTask := trace.NewTask(g.ctx, g.cfg.name)
		defer traceTask.End()
		ctx = context.WithValue(ctx, producerNameKey{}, g.cfg.name)

		// Published by closing the finished channel.
		g.err = safe.CallE(func() error { return task(ctx) })
	}()
}

// run is the undecorated producer task.
func (g *generator[T]) run(ctx context.Context) error {
	// Wait for the first request.
	select {
	case <-g.req:
	case <-ctx.Done():
		return context.Cause(ctx)
	}
	return g.fn(ctx, func(v T) error {
		select {
		case g.resp <- v:
		case <-ctx.Done():
			return context.Cause(ctx)
		}
		// Block until the value is wanted.
		select {
		case <-g.req:
			return nil
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	})
}
