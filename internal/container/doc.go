// Package container provides the hand-built collections the console is
// organized around: a singly linked list, a FIFO queue, and a chained hash
// table. They exist in place of slices and maps on purpose: the point of the
// application is the containers themselves.
//
// Failure conditions are reported through the package sentinels ErrEmpty,
// ErrIndexOutOfRange, and ErrKeyNotFound; operations never panic and never
// substitute a zero value for a missing element.
//
// None of the containers are safe for concurrent use. An instance belongs to
// one caller at a time; callers that share an instance across goroutines must
// serialize access themselves.
package container
