// Package clients provides the instrumented HTTP client used by platform adapters.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// They are infrastructure failures; adapters translate them to domain errors.
var (
	// ErrRequestFailed wraps transport failures: DNS, connection, TLS, timeouts.
	// No response was received.
	ErrRequestFailed = errors.New("request failed")
)
