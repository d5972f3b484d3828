package db

import "errors"

var (
	// ErrNotFound is returned when a group does not exist.
	ErrNotFound = errors.New("group not found")

	// ErrDuplicateTask is returned when a new task reuses a sibling's id.
	ErrDuplicateTask = errors.New("task id already used in group")

	// ErrUnavailable is returned by every operation of a store that failed to open.
	ErrUnavailable = errors.New("store unavailable")
)

// errNoChange aborts an update without writing
var errNoChange = errors.New("no change")
