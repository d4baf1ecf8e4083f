// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"context"
	"io"
	"iter"
)

// An Iterator is a synchronous, single-pass source of values. Next
// returns false once the source is exhausted and is expected to keep
// returning false thereafter.
type Iterator[T any] interface {
	Next() (T, bool)
}

// An Iterable can produce an [Iterator].
type Iterable[T any] interface {
	Iterator() Iterator[T]
}

// An AsyncIterator is a single-pass source of values where retrieving a
// value may block. Next returns false once the source is exhausted. A
// non-nil error is a failure of the source itself and is passed through
// the combinators unchanged.
type AsyncIterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// An AsyncIterable can produce an [AsyncIterator].
type AsyncIterable[T any] interface {
	AsyncIterator() AsyncIterator[T]
}

// closeSource releases the source if it owns any resources.
func closeSource(src any) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// sliceSource replays a slice.
type sliceSource[T any] struct {
	data []T
	pos  int
}

var _ Iterator[any] = (*sliceSource[any])(nil)

func (s *sliceSource[T]) Next() (T, bool) {
	if s.pos >= len(s.data) {
		var zero T
		return zero, false
	}
	ret := s.data[s.pos]
	s.pos++
	return ret, true
}

// seqSource adapts a push-style sequence. The stop function is called
// once the sequence is exhausted or the source is closed.
type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

var (
	_ Iterator[any] = (*seqSource[any])(nil)
	_ io.Closer     = (*seqSource[any])(nil)
)

func newSeqSource[T any](seq iter.Seq[T]) *seqSource[T] {
	next, stop := iter.Pull(seq)
	return &seqSource[T]{next: next, stop: stop}
}

func (s *seqSource[T]) Next() (T, bool) {
	v, ok := s.next()
	if !ok {
		s.stop()
	}
	return v, ok
}

func (s *seqSource[T]) Close() error {
	s.stop()
	return nil
}

// seqErrSource adapts a sequence of value-error pairs into an
// asynchronous source. A pair with a non-nil error is reported as a
// failed pull.
type seqErrSource[T any] struct {
	next func() (T, error, bool)
	stop func()
}

var (
	_ AsyncIterator[any] = (*seqErrSource[any])(nil)
	_ io.Closer          = (*seqErrSource[any])(nil)
)

func (s *seqErrSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	v, err, ok := s.next()
	if !ok {
		s.stop()
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (s *seqErrSource[T]) Close() error {
	s.stop()
	return nil
}

// chanSource receives from a channel until it is closed.
type chanSource[T any] struct {
	ch <-chan T
}

var _ AsyncIterator[any] = (*chanSource[any])(nil)

func (s *chanSource[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case v, ok := <-s.ch:
		return v, ok, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

// asyncSource presents a synchronous source as an asynchronous one.
// Each pull checks the context before touching the underlying cursor.
type asyncSource[T any] struct {
	src Iterator[T]
}

var (
	_ AsyncIterator[any] = (*asyncSource[any])(nil)
	_ io.Closer          = (*asyncSource[any])(nil)
)

func (s *asyncSource[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := s.src.Next()
	return v, ok, nil
}

func (s *asyncSource[T]) Close() error { return closeSource(s.src) }
