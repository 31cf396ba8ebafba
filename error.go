package btreemap

import "errors"

var (
	// ErrKeyNotFound is returned by Get when the key is not present.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyEmpty is returned when a nil or empty key is passed to Get,
	// Set, or Delete. The container cannot store such a key.
	ErrKeyEmpty = errors.New("key cannot be empty")

	// ErrInvalidDegree is returned by New when the minimum degree is below 2.
	ErrInvalidDegree = errors.New("minimum degree must be at least 2")
)
