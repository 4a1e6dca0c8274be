package capture

import "errors"

var (
	// ErrKindMismatch is returned when a live or re-created object does not
	// expose the capabilities its captured kind needs.
	ErrKindMismatch = errors.New("object does not match captured kind")
	ErrUnknownKind  = errors.New("unknown capture kind")
)
