// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type named struct{ name string }

func (n *named) String() string { return n.name }

func TestCompareAbsent(t *testing.T) {
	r := require.New(t)

	var nilPtr *named
	present := &named{"x"}

	r.Zero(Compare[any](nil, nil, nil))
	r.Equal(1, Compare[any](nil, 1, nil))
	r.Equal(-1, Compare[any](1, nil, nil))

	r.Zero(Compare(nilPtr, nilPtr, nil))
	r.Equal(1, Compare(nilPtr, present, nil))
	r.Equal(-1, Compare(present, nilPtr, nil))

	// The strategy is not consulted for absent values.
	called := false
	strategy := func(a, b *named) int {
		called = true
		return 0
	}
	r.Equal(1, Compare(nilPtr, present, strategy))
	r.False(called)

	// A nil pointer inside an interface is absent, too.
	r.Equal(-1, Compare[any](1, nilPtr, nil))
}

func TestDefaultCompare(t *testing.T) {
	tcs := []struct {
		a, b     any
		expected int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{"", "a", -1},
		{"ab", "a", 1},
		{10, 9, -1},
		{1, "1", 0},
		{true, "true", 0},
		{&named{"alpha"}, &named{"beta"}, -1},
		// U+FF61 is a single code unit that sorts after the surrogate
		// pair of U+1F600, though its code point is smaller.
		{"\U0001F600", "｡", -1},
	}

	for _, tc := range tcs {
		r := require.New(t)
		r.Equal(tc.expected, DefaultCompare(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
		r.Equal(-tc.expected, DefaultCompare(tc.b, tc.a), "%v vs %v", tc.b, tc.a)
	}
}

func TestDefaultComparePointers(t *testing.T) {
	r := require.New(t)

	a, b, c := 1, 1, 2
	r.Zero(DefaultCompare(&a, &b))
	r.Equal(-1, DefaultCompare(&a, &c))
	r.Equal(1, DefaultCompare(&c, &b))

	pa, pc := &a, &c
	r.Equal(-1, DefaultCompare(&pa, &pc))

	// Equal pointees compare equal through the wrappers, too.
	r.Zero(Of(&a).Compare(Of(&b)))
	r.Zero(Compare[any](&a, 1, nil))

	// Stringers keep their own rendering.
	r.Equal(-1, DefaultCompare(&named{"alpha"}, &named{"beta"}))
}

func TestCompareNormalizes(t *testing.T) {
	r := require.New(t)

	diff := func(a, b int) int { return a - b }
	r.Equal(-1, Compare(1, 50, diff))
	r.Equal(1, Compare(50, 1, diff))
	r.Zero(Compare(7, 7, diff))

	c, err := CompareAsync(t.Context(), 1, 50, LiftCompare(diff))
	r.NoError(err)
	r.Equal(-1, c)
}

func TestFloatCompare(t *testing.T) {
	r := require.New(t)

	r.Nil(FloatCompare[int](nil))

	fn := FloatCompare(func(a, b float64) float64 { return a - b })
	r.Equal(-1, fn(1, 1.5))
	r.Equal(1, fn(1.5, 1))
	r.Zero(fn(1, 1))
	r.Zero(fn(math.NaN(), 1))
	r.Zero(fn(1, math.Inf(1)-math.Inf(1)))

	negZero := FloatCompare(func(float64, float64) float64 { return math.Copysign(0, -1) })
	r.Zero(negZero(0, 0))
}

func TestNatural(t *testing.T) {
	r := require.New(t)

	r.Equal(1, Compare(10, 9, Natural[int]()))
	r.Equal(-1, Compare("a", "b", Natural[string]()))
	r.Zero(Compare(2.5, 2.5, Natural[float64]()))
}

func TestCompareAsync(t *testing.T) {
	r := require.New(t)
	ctx := t.Context()

	c, err := CompareAsync(ctx, 10, 9, nil)
	r.NoError(err)
	r.Equal(-1, c)

	c, err = CompareAsync(ctx, 10, 9, LiftCompare(Natural[int]()))
	r.NoError(err)
	r.Equal(1, c)

	r.Nil(LiftCompare[int](nil))

	boom := errors.New("boom")
	_, err = CompareAsync(ctx, 1, 2, func(context.Context, int, int) (int, error) {
		return 0, boom
	})
	r.Same(boom, err)

	// Absent values are decided before the strategy can fail.
	c, err = CompareAsync[*named](ctx, nil, &named{"x"},
		func(context.Context, *named, *named) (int, error) { return 0, boom })
	r.NoError(err)
	r.Equal(1, c)
}
