package container

import "iter"

// queueNode is a link in a Queue. The queue keeps its own node type rather
// than borrowing List's: the queue's O(1) Enqueue depends on a tail pointer
// the list deliberately does not have, and tying the two together would let a
// list change break the queue's invariant silently.
type queueNode[T any] struct {
	value T
	next  *queueNode[T]
}

// Queue is a first-in-first-out queue over a singly linked node chain.
// head owns the oldest node; tail is a back-reference to the newest, used
// only to splice new nodes in O(1). Traversing from head visits exactly Len()
// nodes and ends on the node tail points to. The zero value is ready to use.
type Queue[T any] struct {
	head *queueNode[T]
	tail *queueNode[T]
	size int
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Len returns the number of queued elements. O(1).
func (q *Queue[T]) Len() int {
	return q.size
}

// Empty reports whether the queue holds no elements.
func (q *Queue[T]) Empty() bool {
	return q.head == nil
}

// Enqueue adds value at the back of the queue. O(1).
func (q *Queue[T]) Enqueue(value T) {
	node := &queueNode[T]{value: value}
	if q.tail == nil {
		q.head = node
	} else {
		q.tail.next = node
	}
	q.tail = node
	q.size++
}

// Dequeue detaches and returns the oldest element. When the last element is
// removed the tail reference is cleared as well. O(1).
// Returns ErrEmpty when the queue has no elements.
func (q *Queue[T]) Dequeue() (T, error) {
	if q.head == nil {
		var zero T
		return zero, ErrEmpty
	}

	value := q.head.value
	q.head = q.head.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	return value, nil
}

// Peek returns the oldest element without removing it.
// Returns ErrEmpty when the queue has no elements.
func (q *Queue[T]) Peek() (T, error) {
	if q.head == nil {
		var zero T
		return zero, ErrEmpty
	}
	return q.head.value, nil
}

// Clear drops every element.
func (q *Queue[T]) Clear() {
	q.head = nil
	q.tail = nil
	q.size = 0
}

// All returns an iterator over the elements from oldest to newest without
// consuming them. Each range starts a fresh traversal.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for current := q.head; current != nil; current = current.next {
			if !yield(current.value) {
				return
			}
		}
	}
}
