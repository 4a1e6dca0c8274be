package snapshot

import "errors"

var (
	ErrBusy       = errors.New("capture already in progress")
	ErrBadPattern = errors.New("invalid type name pattern")
)
