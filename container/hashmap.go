// Copyright © 2024 Galvanized Logic Inc.

package container

import "github.com/gazed/corevu/mathx"

// hashEntry is one chained bucket entry.
type hashEntry[K comparable, V any] struct {
	key   K
	value V
	next  *hashEntry[K, V]
}

// HashMap is a fixed-bucket-count chained hash table. The bucket count is
// fixed at construction; HashMap never rehashes, matching the original
// engine's table (growth is the caller's responsibility, by constructing
// a bigger table and re-inserting). Keys are compared bit-exact via Go's
// comparable equality. A miss returns the invalid value supplied to
// NewHashMap rather than a (value, ok) pair, matching the original
// engine's API.
type HashMap[K comparable, V any] struct {
	buckets []*hashEntry[K, V]
	keyer   func(K) []byte
	seed    uint64
	invalid V
	count   int
}

// NewHashMap creates a HashMap with the given fixed bucket count. keyer
// converts a key to the bytes that get hashed; invalid is returned by Get
// on a miss.
func NewHashMap[K comparable, V any](bucketCount int, keyer func(K) []byte, invalid V) *HashMap[K, V] {
	if bucketCount <= 0 {
		bucketCount = 1
	}
	return &HashMap[K, V]{
		buckets: make([]*hashEntry[K, V], bucketCount),
		keyer:   keyer,
		invalid: invalid,
	}
}

func (m *HashMap[K, V]) bucketFor(key K) int {
	h := mathx.Hash(m.keyer(key), m.seed)
	return int(h % uint64(len(m.buckets)))
}

// Put inserts or overwrites the value for key.
func (m *HashMap[K, V]) Put(key K, value V) {
	idx := m.bucketFor(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			e.value = value
			return
		}
	}
	m.buckets[idx] = &hashEntry[K, V]{key: key, value: value, next: m.buckets[idx]}
	m.count++
}

// Get returns the value stored for key, or the map's invalid value if key
// is not present.
func (m *HashMap[K, V]) Get(key K) V {
	idx := m.bucketFor(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			return e.value
		}
	}
	return m.invalid
}

// Has reports whether key is present.
func (m *HashMap[K, V]) Has(key K) bool {
	idx := m.bucketFor(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			return true
		}
	}
	return false
}

// Remove deletes key, returning true if it was present.
func (m *HashMap[K, V]) Remove(key K) bool {
	idx := m.bucketFor(key)
	var prev *hashEntry[K, V]
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			if prev != nil {
				prev.next = e.next
			} else {
				m.buckets[idx] = e.next
			}
			m.count--
			return true
		}
		prev = e
	}
	return false
}

// Len returns the number of key/value pairs stored.
func (m *HashMap[K, V]) Len() int { return m.count }

// Each calls fn for every key/value pair. Iteration order is unspecified.
func (m *HashMap[K, V]) Each(fn func(key K, value V)) {
	for _, bucket := range m.buckets {
		for e := bucket; e != nil; e = e.next {
			fn(e.key, e.value)
		}
	}
}
