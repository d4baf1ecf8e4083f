// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package limit provides adapters that pace the pulls made from an
// [riter.AsyncIterator].
//
// The adapters are sources in their own right, so they can be wrapped
// with [riter.NewAsync] or passed to [riter.AsyncIter.Concat]. Closing an
// adapter closes the source it wraps.
package limit

import (
	"context"
	"errors"
	"runtime/trace"
	"time"

	"golang.org/x/time/rate"
	"vawter.tech/riter"
)

// Rate wraps the source so that pulls are made at no more than r per
// second, with bursts of up to b. A pull waits for the limiter before
// touching the source; if ctx is canceled while waiting, the pull fails
// without consuming a value. Unless r is [rate.Inf], both r and b must
// be greater than zero.
func Rate[T any](src riter.AsyncIterator[T], r rate.Limit, b int) riter.AsyncIterator[T] {
	if src == nil {
		panic(errors.New("source must not be nil"))
	}
	if r != rate.Inf {
		if r <= 0 {
			panic(errors.New("rate must be greater than zero"))
		}
		if b <= 0 {
			panic(errors.New("burst must be greater than zero"))
		}
	}
	return &rateLimited[T]{
		limiter: rate.NewLimiter(r, b),
		src:     src,
	}
}

type rateLimited[T any] struct {
	limiter *rate.Limiter
	src     riter.AsyncIterator[T]
}

func (l *rateLimited[T]) Next(ctx context.Context) (T, bool, error) {
	// Fast-path: there's capacity.
	if !l.limiter.Allow() {
		if err := l.wait(ctx); err != nil {
			var zero T
			return zero, false, err
		}
	}
	return l.src.Next(ctx)
}

func (l *rateLimited[T]) wait(ctx context.Context) error {
	defer trace.StartRegion(ctx, "rate limit wait").End()
	return l.limiter.Wait(ctx)
}

func (l *rateLimited[T]) Close() error { return closeSource(l.src) }

// Timeout wraps the source so that each pull is bounded by the given
// duration. A pull that runs over fails with
// [context.DeadlineExceeded]. The source must honor context
// cancellation for the bound to take effect.
func Timeout[T any](src riter.AsyncIterator[T], d time.Duration) riter.AsyncIterator[T] {
	if src == nil {
		panic(errors.New("source must not be nil"))
	}
	if d <= 0 {
		panic(errors.New("timeout must be greater than zero"))
	}
	return &timeLimited[T]{d: d, src: src}
}

type timeLimited[T any] struct {
	d   time.Duration
	src riter.AsyncIterator[T]
}

func (l *timeLimited[T]) Next(ctx context.Context) (T, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, l.d)
	defer cancel()
	return l.src.Next(ctx)
}

func (l *timeLimited[T]) Close() error { return closeSource(l.src) }

func closeSource(src any) error {
	if c, ok := src.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
