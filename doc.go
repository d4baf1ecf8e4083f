// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package riter adds chainable combinators to pull-based iteration, for
// both synchronous and asynchronous sequences.
//
// An [Iter] wraps an [Iterator], whose Next method returns a value and
// a flag that is false once the sequence is exhausted. An [AsyncIter]
// wraps an [AsyncIterator], whose Next method additionally accepts a
// [context.Context] and may fail with an error. Both wrappers implement
// the pull protocol themselves, so a wrapper can be passed anywhere a
// source is expected.
//
// # Creating a wrapper
//
// Use [New] or [NewAsync] to adopt a typed source. The [Of], [FromSeq],
// [AsyncOf], [FromChan], and [FromSeqErr] helpers cover the common
// cases. [From] and [FromAsync] accept a value of unknown type and
// report [ErrType] if it cannot be iterated.
//
//	it := riter.Of(1, 2, 3)
//	it, err := riter.From[rune]("hello")
//	ait := riter.FromChan(ch)
//
// # Combinators
//
// Consuming combinators pull from the shared cursor: [Iter.AdvanceBy],
// [Iter.Every] (alias [Iter.All]), [Iter.Some] (alias [Iter.Any]),
// [Iter.Len] (alias [Iter.Count]), [Iter.Collect], and [Iter.Compare].
// Composing combinators never pull: [Iter.Concat] (alias [Iter.Chain])
// and [Iter.Append] return a new wrapper that yields the receiver's
// remaining values followed by the others. Called with no arguments,
// they return the receiver itself.
//
//	n, err := riter.Of(1, 2, 3).AdvanceBy(2)  // n == 2
//	ok, err := riter.Of(2, 4).Every(isEven)    // ok == true
//	c := riter.Of(1, 2).Append(3).Compare(riter.Of(1, 2, 4)) // c == -1
//
// The [AsyncIter] methods mirror those of [Iter], taking a context and
// returning an error. Failures reported by a source or a predicate are
// returned unchanged and stop the operation. Rejected arguments are
// reported as an [*ArgumentError] wrapping [ErrType] or [ErrRange].
//
// Iteration with a for statement is available through [Iter.Values]
// and [AsyncIter.Values].
//
// # Ordering
//
// [Compare] is the three-way comparison used by the wrappers. Absent
// values, i.e. nil interfaces or nil pointers, sort after every present
// value. Otherwise, the comparison strategy decides; [DefaultCompare]
// compares the values' text by UTF-16 code units, so 10 sorts before 9.
// Use [Natural] for the ordering of numbers and strings, and
// [FloatCompare] to adapt a strategy that returns a difference. Results
// carry sign significance only.
//
// # Sync and async
//
// [Iter.Async] lazily adapts a sync wrapper to async form.
// [AsyncIter.Sync] eagerly drains an async wrapper into memory, since a
// sync pull cannot wait for a value.
//
// # Generators
//
// [Generate] runs a [Producer] function on its own goroutine, handing
// each yielded value to the next pull. The producer runs only while a
// pull is waiting, so values are never computed ahead of demand. Each
// producer is visible in execution traces as a [runtime/trace.Task]
// named by [WithName]. A panic in a producer is recovered and reported
// by the pull in progress.
//
// # Disposal
//
// A wrapper that is abandoned before exhaustion should be closed with
// [Iter.Close] or [AsyncIter.Close], which release the underlying
// source when it implements [io.Closer]. Sources built from [iter.Seq]
// or [Generate] hold resources that are only released by exhaustion or
// by closing.
//
// # Sub-packages
//
// The limit sub-package paces the pulls made from an async source with
// a rate limiter or a per-pull timeout. The linger sub-package provides
// helpers to detect producer goroutines that fail to exit during tests.
package riter
