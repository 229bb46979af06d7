package domain

import "errors"

// Shared sentinels; stores return them wrapped, handlers map them to
// status codes and the signal layer maps them to error events.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrDuplicate     = errors.New("already exists")
	ErrAlreadyJoined = errors.New("already joined")
)
