// Copyright © 2024 Galvanized Logic Inc.

package container

import "unsafe"

// sizeOf returns the size in bytes of a value of type T, using a zero
// value so callers don't need an existing instance on hand.
func sizeOf[T any](zero T) uintptr { return unsafe.Sizeof(zero) }

// bytesToSlice reinterprets a raw byte slice returned by mem.Allocator as
// a []T of the given length. The byte slice must be at least
// length*sizeof(T) bytes, which every caller in this package guarantees
// by requesting exactly that many bytes from the allocator.
func bytesToSlice[T any](raw []byte, length int) []T {
	if length == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), length)
}
