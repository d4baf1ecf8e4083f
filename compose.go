// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"context"
	"errors"
	"io"
)

// concatSource drains each part in order. The first part is usually the
// wrapper being extended, so pulling through the composite advances the
// wrapper's cursor as well.
//
// The state is encoded by idx: idx is the part currently being drained
// and idx == len(parts) means exhausted.
type concatSource[T any] struct {
	parts []Iterator[T]
	idx   int
}

var (
	_ Iterator[any] = (*concatSource[any])(nil)
	_ io.Closer     = (*concatSource[any])(nil)
)

func newConcatSource[T any](lhs Iterator[T], rhs []Iterator[T]) *concatSource[T] {
	parts := make([]Iterator[T], 0, len(rhs)+1)
	parts = append(parts, lhs)
	parts = append(parts, rhs...)
	return &concatSource[T]{parts: parts}
}

func (s *concatSource[T]) Next() (T, bool) {
	for s.idx < len(s.parts) {
		if v, ok := s.parts[s.idx].Next(); ok {
			return v, true
		}
		s.idx++
	}
	var zero T
	return zero, false
}

// Close releases every part that has not been fully drained.
func (s *concatSource[T]) Close() error {
	var errs []error
	for _, part := range s.parts[s.idx:] {
		errs = append(errs, closeSource(part))
	}
	s.idx = len(s.parts)
	return errors.Join(errs...)
}

// asyncConcatSource is the asynchronous version of concatSource. A
// failed pull leaves the position unchanged, so the failing part is
// retried by the next pull.
type asyncConcatSource[T any] struct {
	parts []AsyncIterator[T]
	idx   int
}

var (
	_ AsyncIterator[any] = (*asyncConcatSource[any])(nil)
	_ io.Closer          = (*asyncConcatSource[any])(nil)
)

func newAsyncConcatSource[T any](
	lhs AsyncIterator[T], rhs []AsyncIterator[T],
) *asyncConcatSource[T] {
	parts := make([]AsyncIterator[T], 0, len(rhs)+1)
	parts = append(parts, lhs)
	parts = append(parts, rhs...)
	return &asyncConcatSource[T]{parts: parts}
}

func (s *asyncConcatSource[T]) Next(ctx context.Context) (T, bool, error) {
	for s.idx < len(s.parts) {
		v, ok, err := s.parts[s.idx].Next(ctx)
		if err != nil {
			return v, false, err
		}
		if ok {
			return v, true, nil
		}
		s.idx++
	}
	var zero T
	return zero, false, nil
}

// Close releases every part that has not been fully drained.
func (s *asyncConcatSource[T]) Close() error {
	var errs []error
	for _, part := range s.parts[s.idx:] {
		errs = append(errs, closeSource(part))
	}
	s.idx = len(s.parts)
	return errors.Join(errs...)
}
