package path

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates a path the control law cannot track.
var ErrInvalidPath = errors.New("path: invalid path")

// InvalidPathError describes why a path was rejected.
type InvalidPathError struct {
	Len    int
	Index  int
	Reason string
}

func (e *InvalidPathError) Error() string {
	if e.Reason == "non-finite waypoint" {
		return fmt.Sprintf("path: invalid path: %s at index %d", e.Reason, e.Index)
	}
	return fmt.Sprintf("path: invalid path: %s (got %d)", e.Reason, e.Len)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}
