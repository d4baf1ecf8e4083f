// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"context"
	"io"
	"iter"
)

// An AsyncPredicate tests a value and may block or fail.
type AsyncPredicate[T any] func(ctx context.Context, v T) (bool, error)

// LiftPredicate adapts a synchronous predicate for use with [AsyncIter].
func LiftPredicate[T any](fn func(T) bool) AsyncPredicate[T] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, v T) (bool, error) {
		return fn(v), nil
	}
}

// AsyncIter wraps an [AsyncIterator] and adds combinators. It has the
// same contract as [Iter], except that every pull may block and may
// fail. Errors from the source, predicates, or comparison strategies
// are returned unchanged, and values already pulled are not restored.
//
// An AsyncIter is not safe for concurrent use: two pulls racing on the
// same cursor would corrupt the iteration order.
type AsyncIter[T any] struct {
	src AsyncIterator[T]
}

var (
	_ AsyncIterator[any] = (*AsyncIter[any])(nil)
	_ AsyncIterable[any] = (*AsyncIter[any])(nil)
	_ io.Closer          = (*AsyncIter[any])(nil)
)

// NewAsync wraps the source. It panics with an [*ArgumentError] if the
// source is nil; see [FromAsync] for a checked, dynamically-typed
// constructor.
func NewAsync[T any](src AsyncIterator[T]) *AsyncIter[T] {
	if src == nil {
		panic(typeError("NewAsync", src))
	}
	return &AsyncIter[T]{src: src}
}

// AsyncOf returns an AsyncIter over the given values.
func AsyncOf[T any](values ...T) *AsyncIter[T] {
	return Of(values...).Async()
}

// FromChan returns an AsyncIter that receives from the channel until it
// is closed.
func FromChan[T any](ch <-chan T) *AsyncIter[T] {
	if ch == nil {
		panic(typeError("FromChan", ch))
	}
	return NewAsync[T](&chanSource[T]{ch: ch})
}

// FromSeqErr returns an AsyncIter that pulls from a sequence of
// value-error pairs, such as one produced by a fallible producer. A
// pair with a non-nil error is reported as a failed pull. Call
// [AsyncIter.Close] to release the sequence if the AsyncIter is
// abandoned before exhaustion.
func FromSeqErr[T any](seq iter.Seq2[T, error]) *AsyncIter[T] {
	next, stop := iter.Pull2(seq)
	return NewAsync[T](&seqErrSource[T]{next: next, stop: stop})
}

// Next pulls a single value from the source.
func (it *AsyncIter[T]) Next(ctx context.Context) (T, bool, error) {
	return it.src.Next(ctx)
}

// AsyncIterator returns the receiver.
func (it *AsyncIter[T]) AsyncIterator() AsyncIterator[T] { return it }

// Values returns a single-use sequence that pulls from the receiver. A
// failed pull is yielded as a final pair with a non-nil error.
func (it *AsyncIter[T]) Values(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := it.src.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// AdvanceBy discards up to n values and returns the number discarded.
// See [Iter.AdvanceBy].
func (it *AsyncIter[T]) AdvanceBy(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, rangeError("AdvanceBy", n)
	}
	discarded := 0
	for ; discarded < n; discarded++ {
		_, ok, err := it.src.Next(ctx)
		if err != nil {
			return discarded, err
		}
		if !ok {
			break
		}
	}
	return discarded, nil
}

// All is an alias for [AsyncIter.Every].
func (it *AsyncIter[T]) All(ctx context.Context, fn AsyncPredicate[T]) (bool, error) {
	return it.Every(ctx, fn)
}

// Any is an alias for [AsyncIter.Some].
func (it *AsyncIter[T]) Any(ctx context.Context, fn AsyncPredicate[T]) (bool, error) {
	return it.Some(ctx, fn)
}

// Every reports whether fn returns true for every remaining value. See
// [Iter.Every].
func (it *AsyncIter[T]) Every(ctx context.Context, fn AsyncPredicate[T]) (bool, error) {
	if fn == nil {
		return false, typeError("Every", fn)
	}
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		if pass, err := fn(ctx, v); err != nil {
			return false, err
		} else if !pass {
			return false, nil
		}
	}
}

// Some reports whether fn returns true for any remaining value. See
// [Iter.Some].
func (it *AsyncIter[T]) Some(ctx context.Context, fn AsyncPredicate[T]) (bool, error) {
	if fn == nil {
		return false, typeError("Some", fn)
	}
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if pass, err := fn(ctx, v); err != nil {
			return false, err
		} else if pass {
			return true, nil
		}
	}
}

// Count is an alias for [AsyncIter.Len].
func (it *AsyncIter[T]) Count(ctx context.Context) (int, error) { return it.Len(ctx) }

// Len drains the source and returns the number of values pulled.
func (it *AsyncIter[T]) Len(ctx context.Context) (int, error) {
	n := 0
	for {
		_, ok, err := it.src.Next(ctx)
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// Collect drains the source into a slice. No partial result is
// returned if a pull fails.
func (it *AsyncIter[T]) Collect(ctx context.Context) ([]T, error) {
	var ret []T
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return ret, nil
		}
		ret = append(ret, v)
	}
}

// Chain is an alias for [AsyncIter.Concat].
func (it *AsyncIter[T]) Chain(others ...AsyncIterator[T]) *AsyncIter[T] {
	return it.Concat(others...)
}

// Concat returns an AsyncIter that yields the receiver's remaining
// values followed by the values of each argument, in order. See
// [Iter.Concat]. It panics with an [*ArgumentError] if any argument is
// nil.
func (it *AsyncIter[T]) Concat(others ...AsyncIterator[T]) *AsyncIter[T] {
	if len(others) == 0 {
		return it
	}
	for _, part := range others {
		if part == nil {
			panic(typeError("Concat", part))
		}
	}
	return NewAsync[T](newAsyncConcatSource(AsyncIterator[T](it), others))
}

// Append returns an AsyncIter that yields the receiver's remaining
// values followed by the given values. The receiver is returned
// unchanged if no values are given.
func (it *AsyncIter[T]) Append(values ...T) *AsyncIter[T] {
	if len(values) == 0 {
		return it
	}
	return it.Concat(AsyncOf(values...))
}

// Compare lexicographically compares the remaining values of the
// receiver and other using [DefaultCompare]. See [AsyncIter.CompareFunc].
func (it *AsyncIter[T]) Compare(ctx context.Context, other AsyncIterator[T]) (int, error) {
	return it.compare(ctx, other, nil)
}

// CompareFunc lexicographically compares the remaining values of the
// receiver and other, applying [CompareAsync] with the given strategy
// to each pair of values. See [Iter.CompareFunc]. A nil strategy is
// rejected with [ErrType].
func (it *AsyncIter[T]) CompareFunc(
	ctx context.Context, other AsyncIterator[T], fn AsyncCompareFunc[T],
) (int, error) {
	if fn == nil {
		return 0, typeError("CompareFunc", fn)
	}
	return it.compare(ctx, other, fn)
}

func (it *AsyncIter[T]) compare(
	ctx context.Context, other AsyncIterator[T], fn AsyncCompareFunc[T],
) (int, error) {
	if other == nil {
		return 0, typeError("Compare", other)
	}
	for {
		a, aOK, err := it.src.Next(ctx)
		if err != nil {
			return 0, err
		}
		b, bOK, err := other.Next(ctx)
		if err != nil {
			return 0, err
		}
		switch {
		case !aOK && !bOK:
			return 0, nil
		case !aOK:
			return -1, nil
		case !bOK:
			return 1, nil
		}
		c, err := CompareAsync(ctx, a, b, fn)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return normalize(c), nil
		}
	}
}

// Sync drains the receiver and returns an [Iter] over the collected
// values, in order. Unlike the other combinators, Sync buffers the
// entire remaining sequence in memory. An unbounded source is drained
// until ctx is canceled or the source fails.
func (it *AsyncIter[T]) Sync(ctx context.Context) (*Iter[T], error) {
	values, err := it.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return Of(values...), nil
}

// Close releases the source if it implements [io.Closer].
func (it *AsyncIter[T]) Close() error {
	return closeSource(it.src)
}
