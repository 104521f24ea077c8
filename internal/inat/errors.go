package inat

import "errors"

// API boundary errors.
// Both are fatal for the whole run: callers wrap them with the offending
// taxon id, page, and endpoint, and never recover from them.
var (
	// ErrRetryBudgetExceeded is returned when the API keeps throttling
	// past the configured attempt budget. At that point the client is
	// being rate limited hard enough that continuing would be abusive.
	ErrRetryBudgetExceeded = errors.New("throttled: retry budget exceeded")

	// ErrUnexpectedStatus is returned for any non-throttling error
	// response. These are not retried; a 4xx/5xx here means a broken
	// request or a broken server, and neither heals by waiting.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
