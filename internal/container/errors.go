package container

import "errors"

var (
	// ErrEmpty is returned when removing or peeking from a container with no elements.
	ErrEmpty = errors.New("container is empty")

	// ErrIndexOutOfRange is returned by positional list operations when the
	// index falls outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound is returned by dict lookups and removals for absent keys.
	ErrKeyNotFound = errors.New("key not found")
)
