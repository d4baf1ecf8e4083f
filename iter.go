// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"io"
	"iter"
)

// Iter wraps an [Iterator] and adds combinators. An Iter is itself an
// Iterator, so wrappers compose with one another.
//
// An Iter owns the cursor of the source it was constructed with. The
// source should not be pulled from elsewhere while the Iter is in use.
// An Iter is not safe for concurrent use.
type Iter[T any] struct {
	src Iterator[T]
}

var (
	_ Iterator[any] = (*Iter[any])(nil)
	_ Iterable[any] = (*Iter[any])(nil)
	_ io.Closer     = (*Iter[any])(nil)
)

// New wraps the source. It panics with an [*ArgumentError] if the
// source is nil; see [From] for a checked, dynamically-typed
// constructor.
func New[T any](src Iterator[T]) *Iter[T] {
	if src == nil {
		panic(typeError("New", src))
	}
	return &Iter[T]{src: src}
}

// Of returns an Iter over the given values.
func Of[T any](values ...T) *Iter[T] {
	return New[T](&sliceSource[T]{data: values})
}

// FromSeq returns an Iter that pulls from the sequence. The sequence is
// started on the first pull. Call [Iter.Close] to release it if the Iter
// is abandoned before exhaustion.
func FromSeq[T any](seq iter.Seq[T]) *Iter[T] {
	return New[T](newSeqSource(seq))
}

// Next pulls a single value from the source.
func (it *Iter[T]) Next() (T, bool) {
	return it.src.Next()
}

// Iterator returns the receiver.
func (it *Iter[T]) Iterator() Iterator[T] { return it }

// Values returns a single-use sequence that pulls from the receiver.
// Breaking out of the loop leaves the remaining values in place.
func (it *Iter[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.src.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// AdvanceBy discards up to n values and returns the number discarded,
// which is less than n only if the source was exhausted. Passing
// [math.MaxInt] drains the source. A negative n is rejected with
// [ErrRange] before any value is pulled.
func (it *Iter[T]) AdvanceBy(n int) (int, error) {
	if n < 0 {
		return 0, rangeError("AdvanceBy", n)
	}
	discarded := 0
	for ; discarded < n; discarded++ {
		if _, ok := it.src.Next(); !ok {
			break
		}
	}
	return discarded, nil
}

// All is an alias for [Iter.Every].
func (it *Iter[T]) All(fn func(T) bool) (bool, error) { return it.Every(fn) }

// Any is an alias for [Iter.Some].
func (it *Iter[T]) Any(fn func(T) bool) (bool, error) { return it.Some(fn) }

// Every reports whether fn returns true for every remaining value. It
// stops at the first value for which fn returns false, leaving the
// cursor just past that value. Every returns true for an exhausted
// source.
func (it *Iter[T]) Every(fn func(T) bool) (bool, error) {
	if fn == nil {
		return false, typeError("Every", fn)
	}
	for {
		v, ok := it.src.Next()
		if !ok {
			return true, nil
		}
		if !fn(v) {
			return false, nil
		}
	}
}

// Some reports whether fn returns true for any remaining value. It
// stops at the first such value, leaving the cursor just past it. Some
// returns false for an exhausted source.
func (it *Iter[T]) Some(fn func(T) bool) (bool, error) {
	if fn == nil {
		return false, typeError("Some", fn)
	}
	for {
		v, ok := it.src.Next()
		if !ok {
			return false, nil
		}
		if fn(v) {
			return true, nil
		}
	}
}

// Count is an alias for [Iter.Len].
func (it *Iter[T]) Count() int { return it.Len() }

// Len drains the source and returns the number of values pulled.
func (it *Iter[T]) Len() int {
	n := 0
	for {
		if _, ok := it.src.Next(); !ok {
			return n
		}
		n++
	}
}

// Collect drains the source into a slice.
func (it *Iter[T]) Collect() []T {
	var ret []T
	for {
		v, ok := it.src.Next()
		if !ok {
			return ret
		}
		ret = append(ret, v)
	}
}

// Chain is an alias for [Iter.Concat].
func (it *Iter[T]) Chain(others ...Iterator[T]) *Iter[T] { return it.Concat(others...) }

// Concat returns an Iter that yields the receiver's remaining values
// followed by the values of each argument, in order. Nothing is pulled
// until the returned Iter is. The receiver is returned unchanged if no
// arguments are given. It panics with an [*ArgumentError] if any
// argument is nil.
//
// The returned Iter shares the receiver's cursor: values pulled through
// it are no longer available from the receiver.
func (it *Iter[T]) Concat(others ...Iterator[T]) *Iter[T] {
	if len(others) == 0 {
		return it
	}
	for _, part := range others {
		if part == nil {
			panic(typeError("Concat", part))
		}
	}
	return New[T](newConcatSource(Iterator[T](it), others))
}

// Append returns an Iter that yields the receiver's remaining values
// followed by the given values. The receiver is returned unchanged if
// no values are given.
func (it *Iter[T]) Append(values ...T) *Iter[T] {
	if len(values) == 0 {
		return it
	}
	return it.Concat(&sliceSource[T]{data: values})
}

// Compare lexicographically compares the remaining values of the
// receiver and other using [DefaultCompare]. See [Iter.CompareFunc].
// It panics with an [*ArgumentError] if other is nil.
func (it *Iter[T]) Compare(other Iterator[T]) int {
	ret, err := it.compare(other, nil)
	if err != nil {
		panic(err)
	}
	return ret
}

// CompareFunc lexicographically compares the remaining values of the
// receiver and other, applying [Compare] with the given strategy to
// each pair of values in pull order. The first unequal pair decides
// the result. Otherwise, the source that is exhausted first sorts
// first. Both sources are consumed up to and including the deciding
// pull. A nil strategy is rejected with [ErrType].
func (it *Iter[T]) CompareFunc(other Iterator[T], fn CompareFunc[T]) (int, error) {
	if fn == nil {
		return 0, typeError("CompareFunc", fn)
	}
	return it.compare(other, fn)
}

func (it *Iter[T]) compare(other Iterator[T], fn CompareFunc[T]) (int, error) {
	if other == nil {
		return 0, typeError("Compare", other)
	}
	for {
		a, aOK := it.src.Next()
		b, bOK := other.Next()
		switch {
		case !aOK && !bOK:
			return 0, nil
		case !aOK:
			return -1, nil
		case !bOK:
			return 1, nil
		}
		if c := Compare(a, b, fn); c != 0 {
			return normalize(c), nil
		}
	}
}

// Async returns an [AsyncIter] that replays the receiver's remaining
// values. Nothing is pulled until the returned AsyncIter is.
func (it *Iter[T]) Async() *AsyncIter[T] {
	return NewAsync[T](&asyncSource[T]{src: it})
}

// Close releases the source if it implements [io.Closer]. Sources
// created by this package release any goroutines or pull-style
// sequences that they hold.
func (it *Iter[T]) Close() error {
	return closeSource(it.src)
}
