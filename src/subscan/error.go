package subscan

import "errors"

var (
	// Chain head or block hash could not be resolved. Retried next cycle.
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
)
