// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import "iter"

// From adopts any value that provides synchronous iteration:
//   - an [Iterator] or [Iterable] of T
//   - an [iter.Seq] of T, named or not
//   - a slice of T
//   - a string, when T is rune
//
// Any other value, including asynchronous sources and channels, is
// rejected with [ErrType].
func From[T any](src any) (*Iter[T], error) {
	switch t := src.(type) {
	case nil:
	case Iterator[T]:
		return New(t), nil
	case Iterable[T]:
		if it := t.Iterator(); it != nil {
			return New(it), nil
		}
	case iter.Seq[T]:
		return FromSeq(t), nil
	case func(func(T) bool):
		return FromSeq(iter.Seq[T](t)), nil
	case []T:
		return Of(t...), nil
	case string:
		if it, ok := any(Of([]rune(t)...)).(*Iter[T]); ok {
			return it, nil
		}
	}
	return nil, typeError("From", src)
}

// FromAsync adopts any value that provides asynchronous iteration:
//   - an [AsyncIterator] or [AsyncIterable] of T
//   - a channel of T that can be received from
//
// Any other value, including synchronous sources and slices, is
// rejected with [ErrType]. Use [Iter.Async] to bridge a synchronous
// source.
func FromAsync[T any](src any) (*AsyncIter[T], error) {
	switch t := src.(type) {
	case nil:
	case AsyncIterator[T]:
		return NewAsync(t), nil
	case AsyncIterable[T]:
		if it := t.AsyncIterator(); it != nil {
			return NewAsync(it), nil
		}
	case <-chan T:
		if t != nil {
			return FromChan(t), nil
		}
	case chan T:
		if t != nil {
			return FromChan(t), nil
		}
	}
	return nil, typeError("FromAsync", src)
}
