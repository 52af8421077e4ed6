package repo

import "errors"

// ErrStaleRevision is returned when a compare-and-swap update loses: the row
// exists but its revision moved on since the caller read it.
var ErrStaleRevision = errors.New("stale revision")
