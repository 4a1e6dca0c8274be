package rewind

import "errors"

var (
	// ErrInvalidOperation is returned by Restore when no revert is possible
	// right now.
	ErrInvalidOperation = errors.New("revert not possible")
	ErrNotFound         = errors.New("snapshot not found")
	ErrQueueFull        = errors.New("request queue full")
)
