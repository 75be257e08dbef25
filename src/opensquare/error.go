package opensquare

import "errors"

var (
	// Network failures, timeouts, 429 and 5xx. The proposal is not
	// recorded and is retried on a later cycle.
	ErrTransient = errors.New("transient publish error")

	// Destination refused the proposal. Not recorded, not retried
	// within the cycle.
	ErrRejected = errors.New("proposal rejected")

	// Destination already holds a proposal for this referendum.
	// Treated as success by the caller.
	ErrAlreadyExists = errors.New("proposal already exists")
)
