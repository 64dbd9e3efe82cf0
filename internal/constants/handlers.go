// Package constants provides shared constants used across the codebase.
package constants

import "time"

// HTTP server constants
const (
	// RequestTimeout bounds a single API request, suggestion runs included
	RequestTimeout = 2 * time.Minute

	// ServerReadTimeout is the maximum duration for reading a request
	ServerReadTimeout = 30 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out writes of the response
	ServerWriteTimeout = RequestTimeout + 10*time.Second

	// ServerIdleTimeout is the keep-alive idle timeout
	ServerIdleTimeout = 60 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on shutdown
	ShutdownTimeout = 10 * time.Second

	// MaxRequestBodySize limits JSON request bodies (1MB)
	MaxRequestBodySize = 1 << 20
)
