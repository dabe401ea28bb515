package container

import "iter"

// listNode is a single link in a List. A node is reachable only through its
// predecessor (or the list head), so detaching a node is enough to release it.
type listNode[T any] struct {
	value T
	next  *listNode[T]
}

// List is a singly linked list preserving insertion order. Only the head is
// tracked, so Append and positional access walk the chain; Prepend and
// RemoveFirst are O(1). The zero value is an empty list ready to use.
type List[T any] struct {
	head *listNode[T]
	size int
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements. O(1).
func (l *List[T]) Len() int {
	return l.size
}

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool {
	return l.head == nil
}

// Append links a new element after the current last node, walking the chain
// from the head. O(n).
func (l *List[T]) Append(value T) {
	node := &listNode[T]{value: value}
	if l.head == nil {
		l.head = node
	} else {
		current := l.head
		for current.next != nil {
			current = current.next
		}
		current.next = node
	}
	l.size++
}

// Prepend makes value the new first element. O(1).
func (l *List[T]) Prepend(value T) {
	l.head = &listNode[T]{value: value, next: l.head}
	l.size++
}

// InsertAt places value at position index, shifting later elements back.
// index may equal Len(), which appends. Returns ErrIndexOutOfRange otherwise
// when index is outside [0, Len()].
func (l *List[T]) InsertAt(index int, value T) error {
	if index < 0 || index > l.size {
		return ErrIndexOutOfRange
	}
	if index == 0 {
		l.Prepend(value)
		return nil
	}

	current := l.head
	for i := 0; i < index-1; i++ {
		current = current.next
	}
	current.next = &listNode[T]{value: value, next: current.next}
	l.size++
	return nil
}

// Get returns the element at the 0-based index, walking from the head.
// Returns ErrIndexOutOfRange when index is outside [0, Len()).
func (l *List[T]) Get(index int) (T, error) {
	if index < 0 || index >= l.size {
		var zero T
		return zero, ErrIndexOutOfRange
	}

	current := l.head
	for i := 0; i < index; i++ {
		current = current.next
	}
	return current.value, nil
}

// RemoveFirst detaches and returns the head element.
// Returns ErrEmpty when the list has no elements.
func (l *List[T]) RemoveFirst() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmpty
	}

	value := l.head.value
	l.head = l.head.next
	l.size--
	return value, nil
}

// RemoveAt detaches and returns the element at index.
// Returns ErrIndexOutOfRange when index is outside [0, Len()).
func (l *List[T]) RemoveAt(index int) (T, error) {
	if index < 0 || index >= l.size {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	if index == 0 {
		return l.RemoveFirst()
	}

	current := l.head
	for i := 0; i < index-1; i++ {
		current = current.next
	}
	value := current.next.value
	current.next = current.next.next
	l.size--
	return value, nil
}

// Clear drops every element.
func (l *List[T]) Clear() {
	l.head = nil
	l.size = 0
}

// All returns an iterator over the elements in insertion order. Each range
// over the returned sequence starts a fresh traversal; iterating does not
// consume or mutate the list.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for current := l.head; current != nil; current = current.next {
			if !yield(current.value) {
				return
			}
		}
	}
}

// Slice copies the elements into a new slice in insertion order.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.size)
	for current := l.head; current != nil; current = current.next {
		out = append(out, current.value)
	}
	return out
}
