// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package riter

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingSource records how many times it has been pulled.
type countingSource struct {
	data   []int
	pulls  int
	closed int
}

func (s *countingSource) Next() (int, bool) {
	s.pulls++
	if len(s.data) == 0 {
		return 0, false
	}
	ret := s.data[0]
	s.data = s.data[1:]
	return ret, true
}

func (s *countingSource) Close() error {
	s.closed++
	return nil
}

func TestNewPanicsOnNil(t *testing.T) {
	r := require.New(t)
	r.PanicsWithError(typeError("New", nil).Error(), func() { New[int](nil) })
}

func TestConcatPanicsOnNil(t *testing.T) {
	r := require.New(t)

	msg := typeError("Concat", nil).Error()
	r.PanicsWithError(msg, func() { Of(1).Concat(nil) })
	r.PanicsWithError(msg, func() { Of(1).Chain(Of(2), nil) })
	r.PanicsWithError(msg, func() { AsyncOf(1).Concat(nil) })
	r.PanicsWithError(msg, func() { AsyncOf(1).Chain(AsyncOf(2), nil) })
}

func TestIterNext(t *testing.T) {
	r := require.New(t)

	it := Of("a", "b")
	r.Same(it, it.Iterator())

	v, ok := it.Next()
	r.True(ok)
	r.Equal("a", v)
	v, ok = it.Next()
	r.True(ok)
	r.Equal("b", v)

	// Exhaustion is sticky.
	for range 3 {
		v, ok = it.Next()
		r.False(ok)
		r.Zero(v)
	}
}

func TestIterValues(t *testing.T) {
	r := require.New(t)

	it := Of(1, 2, 3, 4)
	var seen []int
	for v := range it.Values() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	r.Equal([]int{1, 2}, seen)

	// Breaking out of the loop leaves the rest in place.
	r.Equal([]int{3, 4}, slices.Collect(it.Values()))
}

func TestIterAdvanceBy(t *testing.T) {
	tcs := []struct {
		data      []int
		n         int
		discarded int
		remaining []int
	}{
		{nil, 0, 0, nil},
		{nil, 5, 0, nil},
		{[]int{1, 2, 3}, 0, 0, []int{1, 2, 3}},
		{[]int{1, 2, 3}, 1, 1, []int{2, 3}},
		{[]int{1, 2, 3}, 3, 3, nil},
		{[]int{1, 2, 3}, 10, 3, nil},
		{[]int{1, 2, 3}, math.MaxInt, 3, nil},
	}

	for idx, tc := range tcs {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			r := require.New(t)
			it := Of(tc.data...)
			n, err := it.AdvanceBy(tc.n)
			r.NoError(err)
			r.Equal(tc.discarded, n)
			r.Equal(tc.remaining, it.Collect())
		})
	}
}

func TestIterAdvanceByNegative(t *testing.T) {
	r := require.New(t)

	src := &countingSource{data: []int{1, 2, 3}}
	it := New[int](src)
	n, err := it.AdvanceBy(-1)
	r.ErrorIs(err, ErrRange)
	r.Zero(n)
	r.Zero(src.pulls)

	var argErr *ArgumentError
	r.ErrorAs(err, &argErr)
	r.Equal("AdvanceBy", argErr.Op)
	r.Equal(-1, argErr.Arg)

	r.Equal(3, it.Len())
}

func TestIterEvery(t *testing.T) {
	r := require.New(t)
	isEven := func(v int) bool { return v%2 == 0 }

	ok, err := Of[int]().Every(isEven)
	r.NoError(err)
	r.True(ok)

	ok, err = Of(2, 4, 6).All(isEven)
	r.NoError(err)
	r.True(ok)

	// Stops at the first failing value.
	it := Of(2, 3, 4, 5)
	ok, err = it.Every(isEven)
	r.NoError(err)
	r.False(ok)
	r.Equal([]int{4, 5}, it.Collect())

	_, err = Of(1).Every(nil)
	r.ErrorIs(err, ErrType)
}

func TestIterSome(t *testing.T) {
	r := require.New(t)
	isEven := func(v int) bool { return v%2 == 0 }

	ok, err := Of[int]().Some(isEven)
	r.NoError(err)
	r.False(ok)

	ok, err = Of(1, 3, 5).Any(isEven)
	r.NoError(err)
	r.False(ok)

	// Stops at the first passing value.
	it := Of(1, 2, 3, 4)
	ok, err = it.Some(isEven)
	r.NoError(err)
	r.True(ok)
	r.Equal([]int{3, 4}, it.Collect())

	src := &countingSource{data: []int{1}}
	_, err = New[int](src).Any(nil)
	r.ErrorIs(err, ErrType)
	r.Zero(src.pulls)
}

func TestIterPredicatePanics(t *testing.T) {
	r := require.New(t)
	r.PanicsWithValue("boom", func() {
		_, _ = Of(1).Every(func(int) bool { panic("boom") })
	})
}

func TestIterLen(t *testing.T) {
	r := require.New(t)

	r.Zero(Of[string]().Len())
	r.Equal(3, Of(1, 2, 3).Count())

	it := Of(1, 2, 3)
	_, _ = it.AdvanceBy(1)
	r.Equal(2, it.Len())
	r.Zero(it.Len())
}

func TestIterConcat(t *testing.T) {
	r := require.New(t)

	it := Of(1, 2)
	r.Same(it, it.Concat())
	r.Same(it, it.Chain())
	r.Same(it, it.Append())

	joined := Of(1, 2).Concat(Of[int](), Of(3), Of[int](), Of(4, 5))
	r.Equal([]int{1, 2, 3, 4, 5}, joined.Collect())

	r.Equal([]int{1, 2, 3}, Of[int]().Append(1, 2, 3).Collect())
	r.Equal([]int{1, 2, 3}, Of(1).Chain(Of(2)).Append(3).Collect())
}

func TestIterConcatIsLazy(t *testing.T) {
	r := require.New(t)

	lhs := &countingSource{data: []int{1, 2}}
	rhs := &countingSource{data: []int{3}}
	base := New[int](lhs)
	joined := base.Concat(rhs)
	r.Zero(lhs.pulls)
	r.Zero(rhs.pulls)

	// The composite shares the receiver's cursor.
	v, ok := joined.Next()
	r.True(ok)
	r.Equal(1, v)
	v, ok = base.Next()
	r.True(ok)
	r.Equal(2, v)
	r.Equal([]int{3}, joined.Collect())
}

func TestIterClose(t *testing.T) {
	r := require.New(t)

	r.NoError(Of(1).Close())

	lhs := &countingSource{data: []int{1}}
	rhs := &countingSource{data: []int{2}}
	joined := New[int](lhs).Concat(rhs)
	_, _ = joined.Next()
	r.NoError(joined.Close())
	r.Equal(1, lhs.closed)
	r.Equal(1, rhs.closed)

	// Drained parts are not closed again.
	lhs = &countingSource{data: []int{1}}
	rhs = &countingSource{data: []int{2}}
	joined = New[int](lhs).Concat(rhs)
	r.Equal(2, joined.Len())
	r.NoError(joined.Close())
	r.Zero(lhs.closed)
	r.Zero(rhs.closed)
}

func TestFromSeq(t *testing.T) {
	r := require.New(t)

	var stopped bool
	seq := func(yield func(int) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}

	it := FromSeq(seq)
	n, err := it.AdvanceBy(3)
	r.NoError(err)
	r.Equal(3, n)
	v, ok := it.Next()
	r.True(ok)
	r.Equal(3, v)
	r.False(stopped)

	r.NoError(it.Close())
	r.True(stopped)
	_, ok = it.Next()
	r.False(ok)

	r.Equal([]int{1, 2, 3}, FromSeq(slices.Values([]int{1, 2, 3})).Collect())
}

func TestIterCompare(t *testing.T) {
	tcs := []struct {
		a, b     []int
		expected int
	}{
		{[]int{1, 2, 3, 4}, []int{1, 2, 4, 5}, -1},
		{[]int{1, 2, 3}, []int{1, 2, 3, 4, 5}, -1},
		{[]int{9, 7, 5, 3}, []int{9, 7, 5, 3}, 0},
		{nil, nil, 0},
		{[]int{1}, nil, 1},
		// Text ordering.
		{[]int{10}, []int{9}, -1},
	}

	for idx, tc := range tcs {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			r := require.New(t)
			r.Equal(tc.expected, Of(tc.a...).Compare(Of(tc.b...)))
			// Anti-symmetry.
			r.Equal(-tc.expected, Of(tc.b...).Compare(Of(tc.a...)))
		})
	}

	require.Equal(t, 1, Of("a", "a", "a").Compare(Of[string]()))
}

func TestIterCompareFunc(t *testing.T) {
	r := require.New(t)

	c, err := Of(10).CompareFunc(Of(9), Natural[int]())
	r.NoError(err)
	r.Equal(1, c)

	// Results are reduced to their sign.
	c, err = Of(1).CompareFunc(Of(100), func(a, b int) int { return a - b })
	r.NoError(err)
	r.Equal(-1, c)

	c, err = Of(1.5, 2).CompareFunc(Of(1.5, math.NaN()),
		FloatCompare(func(a, b float64) float64 { return a - b }))
	r.NoError(err)
	r.Zero(c)

	_, err = Of(1).CompareFunc(Of(1), nil)
	r.ErrorIs(err, ErrType)

	_, err = Of(1).CompareFunc(nil, Natural[int]())
	r.ErrorIs(err, ErrType)
	r.Panics(func() { Of(1).Compare(nil) })
}

func TestIterCompareStopsAtDecision(t *testing.T) {
	r := require.New(t)

	a := Of(1, 2, 3)
	b := Of(1, 3, 4)
	r.Equal(-1, a.Compare(b))
	r.Equal([]int{3}, a.Collect())
	r.Equal([]int{4}, b.Collect())
}

func TestIterCompareAbsent(t *testing.T) {
	r := require.New(t)

	one := 1
	r.Equal(1, Of[*int](nil).Compare(Of(&one)))
	r.Equal(-1, Of(&one).Compare(Of[*int](nil)))
	r.Zero(Of[*int](nil).Compare(Of[*int](nil)))
}
