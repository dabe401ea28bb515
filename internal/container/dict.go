package container

import (
	"hash/maphash"
	"iter"
)

// DefaultCapacity is the bucket count used when NewDict is given a
// non-positive capacity.
const DefaultCapacity = 16

type pair[K comparable, V any] struct {
	key   K
	value V
}

// Dict is a hash table mapping keys to values, with collisions resolved by
// chaining: each bucket holds an ordered slice of pairs scanned linearly.
// The bucket count is fixed at construction; chains simply grow under load,
// degrading lookups toward O(n), and only an explicit Resize rehashes.
//
// Absent keys are reported through ErrKeyNotFound on both Get and Remove.
// The error convention is used consistently instead of a comma-ok form so a
// missing cache entry and an empty cached value can never be confused.
//
// Hashing uses a per-instance seed, so equal keys always land in the same
// bucket within one Dict; bucket placement across instances or process runs
// is unspecified.
type Dict[K comparable, V any] struct {
	seed     maphash.Seed
	buckets  [][]pair[K, V]
	capacity int
	size     int
}

// NewDict returns an empty dict with the given bucket count.
// Non-positive capacities fall back to DefaultCapacity.
func NewDict[K comparable, V any](capacity int) *Dict[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Dict[K, V]{
		seed:     maphash.MakeSeed(),
		buckets:  make([][]pair[K, V], capacity),
		capacity: capacity,
	}
}

func (d *Dict[K, V]) bucketIndex(key K) int {
	return int(maphash.Comparable(d.seed, key) % uint64(d.capacity))
}

// Len returns the number of stored key-value pairs. O(1).
func (d *Dict[K, V]) Len() int {
	return d.size
}

// Empty reports whether the dict holds no pairs.
func (d *Dict[K, V]) Empty() bool {
	return d.size == 0
}

// Put stores value under key. An existing pair with an equal key is replaced
// in place, leaving Len() unchanged; otherwise the pair is appended to its
// bucket's chain.
func (d *Dict[K, V]) Put(key K, value V) {
	index := d.bucketIndex(key)
	bucket := d.buckets[index]

	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return
		}
	}

	d.buckets[index] = append(bucket, pair[K, V]{key: key, value: value})
	d.size++
}

// Get returns the value stored under key.
// Returns ErrKeyNotFound when no pair matches.
func (d *Dict[K, V]) Get(key K) (V, error) {
	bucket := d.buckets[d.bucketIndex(key)]
	for i := range bucket {
		if bucket[i].key == key {
			return bucket[i].value, nil
		}
	}

	var zero V
	return zero, ErrKeyNotFound
}

// Remove detaches the pair stored under key and returns its value.
// Returns ErrKeyNotFound when no pair matches.
func (d *Dict[K, V]) Remove(key K) (V, error) {
	index := d.bucketIndex(key)
	bucket := d.buckets[index]

	for i := range bucket {
		if bucket[i].key == key {
			value := bucket[i].value
			d.buckets[index] = append(bucket[:i], bucket[i+1:]...)
			d.size--
			return value, nil
		}
	}

	var zero V
	return zero, ErrKeyNotFound
}

// Contains reports whether a pair with key is stored.
func (d *Dict[K, V]) Contains(key K) bool {
	bucket := d.buckets[d.bucketIndex(key)]
	for i := range bucket {
		if bucket[i].key == key {
			return true
		}
	}
	return false
}

// Clear drops every pair, keeping the current capacity.
func (d *Dict[K, V]) Clear() {
	d.buckets = make([][]pair[K, V], d.capacity)
	d.size = 0
}

// Resize rehashes every pair into a fresh bucket array of newCapacity
// buckets. Resizing never happens implicitly.
// Non-positive capacities fall back to DefaultCapacity.
func (d *Dict[K, V]) Resize(newCapacity int) {
	if newCapacity <= 0 {
		newCapacity = DefaultCapacity
	}

	old := d.buckets
	d.buckets = make([][]pair[K, V], newCapacity)
	d.capacity = newCapacity

	for _, bucket := range old {
		for _, p := range bucket {
			index := d.bucketIndex(p.key)
			d.buckets[index] = append(d.buckets[index], p)
		}
	}
}

// Keys returns every stored key in bucket order.
func (d *Dict[K, V]) Keys() []K {
	keys := make([]K, 0, d.size)
	for _, bucket := range d.buckets {
		for i := range bucket {
			keys = append(keys, bucket[i].key)
		}
	}
	return keys
}

// Values returns every stored value in bucket order.
func (d *Dict[K, V]) Values() []V {
	values := make([]V, 0, d.size)
	for _, bucket := range d.buckets {
		for i := range bucket {
			values = append(values, bucket[i].value)
		}
	}
	return values
}

// All returns an iterator over every key-value pair in bucket order.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, bucket := range d.buckets {
			for i := range bucket {
				if !yield(bucket[i].key, bucket[i].value) {
					return
				}
			}
		}
	}
}
