/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package own

import (
	"sync/atomic"
)

// sharedState is the type-erased backing of a Shared handle. Narrowed views
// produced by CastShared point at the same state, so the reference count is
// global across all views of one produced value.
type sharedState struct {
	refs     atomic.Int64
	value    any
	finalize func(any)
}

func (s *sharedState) release() bool {
	if s.refs.Add(-1) != 0 {
		return false
	}
	if s.finalize != nil {
		s.finalize(s.value)
	}
	s.value = nil
	return true
}

// Shared is a reference-counted owning handle to a value of type T.
// The value is destroyed (its finalizer runs) when the last holder releases it.
type Shared[T any] struct {
	s *sharedState
}

// NewShared creates a Shared handle owning v with an initial count of one.
// An optional finalizer runs exactly once, when the count drops to zero.
func NewShared[T any](v T, finalize ...func(T)) *Shared[T] {
	st := &sharedState{value: v}
	if len(finalize) > 0 && finalize[0] != nil {
		fin := finalize[0]
		st.finalize = func(x any) { fin(x.(T)) }
	}
	st.refs.Store(1)
	return &Shared[T]{s: st}
}

// Value returns the held value, or the zero value after destruction.
func (h *Shared[T]) Value() T {
	var zero T
	if h == nil || h.s == nil {
		return zero
	}
	if v, ok := h.s.value.(T); ok {
		return v
	}
	return zero
}

// Clone returns a new handle to the same value, incrementing the count.
func (h *Shared[T]) Clone() *Shared[T] {
	if h == nil || h.s == nil {
		return nil
	}
	h.s.refs.Add(1)
	return &Shared[T]{s: h.s}
}

// Release drops this handle's reference. It reports whether this call
// destroyed the value. Releasing more often than acquiring is a caller bug.
func (h *Shared[T]) Release() bool {
	if h == nil || h.s == nil {
		return false
	}
	s := h.s
	h.s = nil
	return s.release()
}

// Refs returns the current reference count.
func (h *Shared[T]) Refs() int64 {
	if h == nil || h.s == nil {
		return 0
	}
	return h.s.refs.Load()
}

// Valid reports whether the handle still participates in ownership.
func (h *Shared[T]) Valid() bool {
	return h != nil && h.s != nil
}

// CastShared narrows a Shared[T] view to a Shared[U] view of the same value.
// Both views share one reference count; the count is incremented for the new
// view. Returns false if the held value is not a U.
func CastShared[U any, T any](h *Shared[T]) (*Shared[U], bool) {
	if h == nil || h.s == nil {
		return nil, false
	}
	if _, ok := h.s.value.(U); !ok {
		return nil, false
	}
	h.s.refs.Add(1)
	return &Shared[U]{s: h.s}, true
}

// Unique is a single-owner handle to a value of type T. Ownership moves with
// Move/CastUnique; Release destroys the value by running its finalizer.
type Unique[T any] struct {
	value    any
	finalize func(any)
	live     bool
}

// NewUnique creates a Unique handle owning v. An optional finalizer runs when
// the owning handle is released.
func NewUnique[T any](v T, finalize ...func(T)) *Unique[T] {
	u := &Unique[T]{value: v, live: true}
	if len(finalize) > 0 && finalize[0] != nil {
		fin := finalize[0]
		u.finalize = func(x any) { fin(x.(T)) }
	}
	return u
}

// Value returns the held value, or the zero value after a move or release.
func (u *Unique[T]) Value() T {
	var zero T
	if u == nil || !u.live {
		return zero
	}
	if v, ok := u.value.(T); ok {
		return v
	}
	return zero
}

// Move transfers ownership to a fresh handle and invalidates the receiver.
func (u *Unique[T]) Move() *Unique[T] {
	if u == nil || !u.live {
		return nil
	}
	next := &Unique[T]{value: u.value, finalize: u.finalize, live: true}
	u.invalidate()
	return next
}

// Release destroys the held value, running the finalizer if one was set.
// It is a no-op on a moved-from or already released handle.
func (u *Unique[T]) Release() {
	if u == nil || !u.live {
		return
	}
	fin, v := u.finalize, u.value
	u.invalidate()
	if fin != nil {
		fin(v)
	}
}

// Valid reports whether the handle currently owns a value.
func (u *Unique[T]) Valid() bool {
	return u != nil && u.live
}

func (u *Unique[T]) invalidate() {
	u.value = nil
	u.finalize = nil
	u.live = false
}

// CastUnique narrows a Unique[T] to a Unique[U], moving ownership into the
// returned handle and invalidating the source. Returns false (and leaves the
// source intact) if the held value is not a U.
func CastUnique[U any, T any](u *Unique[T]) (*Unique[U], bool) {
	if u == nil || !u.live {
		return nil, false
	}
	if _, ok := u.value.(U); !ok {
		return nil, false
	}
	next := &Unique[U]{value: u.value, finalize: u.finalize, live: true}
	u.invalidate()
	return next, true
}
