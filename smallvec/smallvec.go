// Package smallvec provides Vec, a growable array that keeps up to a fixed
// number of elements inline and spills to a heap-allocated slice beyond that.
//
// The inline capacity is chosen through the array type parameter:
//
//	var v smallvec.Vec[int, [8]int] // up to 8 ints without allocating
//
// Slices returned by AsSlice alias the storage of the Vec they were taken
// from. Copying a Vec copies its inline elements but shares a spilled heap
// slice, so use Clone for an independent copy.
package smallvec

import (
	"fmt"
	"iter"
	"slices"
)

// Array lists the supported inline storage shapes.
type Array[T any] interface {
	[1]T | [2]T | [4]T | [8]T | [16]T | [32]T | [64]T
}

// Vec is an ordered sequence of T stored inline in an A until it outgrows
// it. The zero value is an empty vector ready to use.
type Vec[T any, A Array[T]] struct {
	inline A
	n      int // elements used in inline
	heap   []T // non-nil once spilled
}

// New returns an empty vector.
func New[T any, A Array[T]]() Vec[T, A] {
	return Vec[T, A]{}
}

// WithCapacity returns an empty vector able to hold n elements without
// reallocating. Capacities that fit the inline array stay inline.
func WithCapacity[T any, A Array[T]](n int) Vec[T, A] {
	var v Vec[T, A]
	if n > v.InlineCap() {
		v.heap = make([]T, 0, n)
	}
	return v
}

// From returns a vector holding items in order.
func From[T any, A Array[T]](items ...T) Vec[T, A] {
	v := WithCapacity[T, A](len(items))
	for _, item := range items {
		v.Push(item)
	}
	return v
}

func (v *Vec[T, A]) buf() []T {
	switch a := any(&v.inline).(type) {
	case *[1]T:
		return a[:]
	case *[2]T:
		return a[:]
	case *[4]T:
		return a[:]
	case *[8]T:
		return a[:]
	case *[16]T:
		return a[:]
	case *[32]T:
		return a[:]
	case *[64]T:
		return a[:]
	}
	panic(fmt.Sprintf("smallvec: unsupported inline array %T", v.inline))
}

// InlineCap returns the number of elements the vector stores without
// allocating.
func (v *Vec[T, A]) InlineCap() int {
	return len(v.buf())
}

// Spilled reports whether the elements live on the heap.
func (v *Vec[T, A]) Spilled() bool {
	return v.heap != nil
}

// Len returns the number of elements.
func (v *Vec[T, A]) Len() int {
	if v.heap != nil {
		return len(v.heap)
	}
	return v.n
}

// IsEmpty reports whether the vector has no elements.
func (v *Vec[T, A]) IsEmpty() bool {
	return v.Len() == 0
}

// Cap returns the number of elements the vector can hold before it has to
// grow.
func (v *Vec[T, A]) Cap() int {
	if v.heap != nil {
		return cap(v.heap)
	}
	return v.InlineCap()
}

// AsSlice returns the elements as a contiguous slice. The slice aliases the
// vector's storage and is only valid until the next mutation.
func (v *Vec[T, A]) AsSlice() []T {
	if v.heap != nil {
		return v.heap
	}
	return v.buf()[:v.n]
}

// Reserve makes room for at least additional more elements.
func (v *Vec[T, A]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	if v.heap != nil {
		v.heap = slices.Grow(v.heap, additional)
		return
	}
	need := v.n + additional
	if need <= v.InlineCap() {
		return
	}
	v.spill(need)
}

func (v *Vec[T, A]) spill(capacity int) {
	buf := v.buf()
	heap := make([]T, v.n, max(capacity, 2*len(buf)))
	copy(heap, buf[:v.n])
	clear(buf[:v.n])
	v.heap = heap
	v.n = 0
}

// Push appends x.
func (v *Vec[T, A]) Push(x T) {
	if v.heap != nil {
		v.heap = append(v.heap, x)
		return
	}
	buf := v.buf()
	if v.n < len(buf) {
		buf[v.n] = x
		v.n++
		return
	}
	v.spill(v.n + 1)
	v.heap = append(v.heap, x)
}

// Pop removes and returns the last element.
func (v *Vec[T, A]) Pop() (T, bool) {
	var zero T
	if v.heap != nil {
		if len(v.heap) == 0 {
			return zero, false
		}
		last := v.heap[len(v.heap)-1]
		v.heap[len(v.heap)-1] = zero
		v.heap = v.heap[:len(v.heap)-1]
		return last, true
	}
	if v.n == 0 {
		return zero, false
	}
	buf := v.buf()
	v.n--
	last := buf[v.n]
	buf[v.n] = zero
	return last, true
}

// Get returns the element at index i. It panics if i is out of range.
func (v *Vec[T, A]) Get(i int) T {
	return v.AsSlice()[i]
}

// Set replaces the element at index i. It panics if i is out of range.
func (v *Vec[T, A]) Set(i int, x T) {
	v.AsSlice()[i] = x
}

// Clear removes all elements and returns the vector to inline storage.
func (v *Vec[T, A]) Clear() {
	clear(v.buf()[:v.n])
	v.n = 0
	v.heap = nil
}

// All returns an iterator over index/element pairs.
func (v *Vec[T, A]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.AsSlice() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vec[T, A]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.AsSlice() {
			if !yield(x) {
				return
			}
		}
	}
}

// Drain moves the elements out of the vector and returns an iterator that
// yields each of them exactly once, in order. The vector is empty as soon as
// Drain returns; elements not consumed by the caller are dropped.
func (v *Vec[T, A]) Drain() iter.Seq[T] {
	items := v.take()
	return func(yield func(T) bool) {
		for _, x := range items {
			if !yield(x) {
				return
			}
		}
	}
}

func (v *Vec[T, A]) take() []T {
	if v.heap != nil {
		items := v.heap
		v.heap = nil
		return items
	}
	buf := v.buf()
	items := slices.Clone(buf[:v.n])
	clear(buf[:v.n])
	v.n = 0
	return items
}

// Clone returns an independent copy of the vector.
func (v *Vec[T, A]) Clone() Vec[T, A] {
	return From[T, A](v.AsSlice()...)
}

func (v *Vec[T, A]) String() string {
	return fmt.Sprint(v.AsSlice())
}

// Equal reports whether a and b hold the same elements in the same order.
// Storage location is not compared.
func Equal[T comparable, A Array[T]](a, b *Vec[T, A]) bool {
	return slices.Equal(a.AsSlice(), b.AsSlice())
}
