package util

import "errors"

// ErrEmptyDestination is returned by BoundedCopy when dst has no room at
// all. An empty source is a normal no-op; an empty destination is a caller
// bug, since the copy could never make progress.
var ErrEmptyDestination = errors.New("util: copy into empty destination")

// BoundedCopy copies elements from src into dst and reports how many were
// copied: the smaller of the two lengths. Unlike the built-in copy it
// rejects an empty destination so that loops driven by the returned count
// cannot silently spin.
func BoundedCopy[T any](dst, src []T) (int, error) {
	if len(dst) == 0 {
		return 0, ErrEmptyDestination
	}
	return copy(dst, src), nil
}
