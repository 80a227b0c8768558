// Copyright © 2024 Galvanized Logic Inc.

// Package container provides the engine's hand-rolled collection types:
// Vector, List, HashMap, and String. Vector routes its backing storage
// through a mem.Allocator under a caller-chosen tag rather than relying on
// the runtime's own growth strategy for slices. List, HashMap, and String
// use ordinary Go-managed memory and do not go through the allocator.
package container

import "github.com/gazed/corevu/mem"

// Vector is a growable, contiguous array, analogous to a C++ std::vector.
// Its backing storage comes from the given allocator; growth doubles
// capacity and copies the live elements into a fresh allocation. Any
// iterator obtained from a Vector is invalidated by a subsequent call to
// Push, Insert, Remove, or Clear.
type Vector[T any] struct {
	alloc *mem.Allocator
	tag   mem.Tag
	data  []T
}

// NewVector creates an empty Vector that allocates through alloc under tag.
func NewVector[T any](alloc *mem.Allocator, tag mem.Tag) *Vector[T] {
	return &Vector[T]{alloc: alloc, tag: tag}
}

// Len returns the number of elements currently stored.
func (v *Vector[T]) Len() int { return len(v.data) }

// At returns the element at index i. It panics if i is out of range,
// matching slice indexing semantics.
func (v *Vector[T]) At(i int) T { return v.data[i] }

// Set overwrites the element at index i.
func (v *Vector[T]) Set(i int, value T) { v.data[i] = value }

// Push appends value, growing the backing array through the allocator if
// the current one is full.
func (v *Vector[T]) Push(value T) {
	if len(v.data) == cap(v.data) {
		v.grow()
	}
	v.data = append(v.data, value)
}

// grow allocates a new backing array through the allocator sized for
// double the current capacity (or 8 elements for an empty vector) and
// copies the live elements into it.
func (v *Vector[T]) grow() {
	var zero T
	elemSize := int64(sizeOf(zero))
	newCap := cap(v.data) * 2
	if newCap == 0 {
		newCap = 8
	}
	raw := v.alloc.Allocate(elemSize*int64(newCap), v.tag)
	grown := bytesToSlice[T](raw, newCap)[:len(v.data)]
	copy(grown, v.data)
	v.data = grown
}

// Insert places value at index i, shifting subsequent elements right.
func (v *Vector[T]) Insert(i int, value T) {
	var zero T
	v.Push(zero)
	copy(v.data[i+1:], v.data[i:len(v.data)-1])
	v.data[i] = value
}

// Remove deletes the element at index i, shifting subsequent elements
// left, and returns the removed value.
func (v *Vector[T]) Remove(i int) T {
	removed := v.data[i]
	copy(v.data[i:], v.data[i+1:])
	var zero T
	v.data[len(v.data)-1] = zero
	v.data = v.data[:len(v.data)-1]
	return removed
}

// Clear empties the vector without releasing its backing storage.
func (v *Vector[T]) Clear() { v.data = v.data[:0] }

// Find returns the index of the first element equal to value under eq, or
// -1 if none matches.
func (v *Vector[T]) Find(value T, eq func(a, b T) bool) int {
	for i := range v.data {
		if eq(v.data[i], value) {
			return i
		}
	}
	return -1
}

// Each calls fn for every element in order.
func (v *Vector[T]) Each(fn func(i int, value T)) {
	for i, value := range v.data {
		fn(i, value)
	}
}
