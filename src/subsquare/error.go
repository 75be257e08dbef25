package subsquare

import "errors"

var (
	// Network failures, timeouts, 429 and 5xx. Retried next cycle.
	ErrTransient = errors.New("transient fetch error")

	// Response body could not be decoded. Not retryable within a cycle.
	ErrMalformedResponse = errors.New("malformed response")

	// Unexpected non-5xx status. Not retryable within a cycle.
	ErrUnexpectedStatus = errors.New("unexpected status")
)
