// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"unicode/utf16"
)

// A CompareFunc is a three-way comparison strategy. Only the sign of the
// result is significant.
type CompareFunc[T any] func(a, b T) int

// An AsyncCompareFunc is a three-way comparison strategy that may block
// or fail.
type AsyncCompareFunc[T any] func(ctx context.Context, a, b T) (int, error)

// Compare returns the three-way comparison of a and b. A nil strategy
// selects [DefaultCompare].
//
// Absent values, i.e. nil interfaces and nil pointers, are ordered
// before the strategy is consulted: two absent values are equal and an
// absent value sorts after any present value.
func Compare[T any](a, b T, fn CompareFunc[T]) int {
	if c, decided := compareAbsent(a, b); decided {
		return c
	}
	if fn == nil {
		fn = DefaultCompare[T]
	}
	return normalize(fn(a, b))
}

// CompareAsync is the asynchronous version of [Compare]. Any error
// returned by the strategy is returned unchanged.
func CompareAsync[T any](ctx context.Context, a, b T, fn AsyncCompareFunc[T]) (int, error) {
	if c, decided := compareAbsent(a, b); decided {
		return c, nil
	}
	if fn == nil {
		return Compare(a, b, nil), nil
	}
	c, err := fn(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return normalize(c), nil
}

// DefaultCompare renders both values as text with [fmt.Sprint] and
// orders the text by UTF-16 code units. Numbers are therefore ordered
// as text: 10 sorts before 9. A pointer that does not implement
// [fmt.Stringer] or error is rendered as the value it points to, never
// as an address.
func DefaultCompare[T any](a, b T) int {
	x, y := render(a), render(b)
	if x == y {
		return 0
	}
	return slices.Compare(utf16.Encode([]rune(x)), utf16.Encode([]rune(y)))
}

// FloatCompare adapts a floating-point strategy. NaN and negative zero
// are treated as equal and any other result is reduced to its sign.
func FloatCompare[T any](fn func(a, b T) float64) CompareFunc[T] {
	if fn == nil {
		return nil
	}
	return func(a, b T) int {
		v := fn(a, b)
		switch {
		case math.IsNaN(v), v == 0:
			return 0
		case v < 0:
			return -1
		default:
			return 1
		}
	}
}

// LiftCompare adapts a synchronous strategy for use with asynchronous
// comparisons.
func LiftCompare[T any](fn CompareFunc[T]) AsyncCompareFunc[T] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, a, b T) (int, error) {
		return fn(a, b), nil
	}
}

// Natural returns [cmp.Compare] as a strategy.
func Natural[T cmp.Ordered]() CompareFunc[T] {
	return cmp.Compare[T]
}

func render(v any) string {
	for {
		switch v.(type) {
		case fmt.Stringer, error:
			return fmt.Sprint(v)
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Sprint(v)
		}
		v = rv.Elem().Interface()
	}
}

func compareAbsent[T any](a, b T) (c int, decided bool) {
	switch aAbsent, bAbsent := isAbsent(a), isAbsent(b); {
	case aAbsent && bAbsent:
		return 0, true
	case aAbsent:
		return 1, true
	case bAbsent:
		return -1, true
	default:
		return 0, false
	}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// normalize is applied to every result leaving this package.
func normalize(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}
