// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Similar face search constants
const (
	// DefaultSimilarFacesLimit is the number of neighbors returned when no limit is given
	DefaultSimilarFacesLimit = 20

	// MaxSimilarFacesLimit caps the number of neighbors a single request may ask for
	MaxSimilarFacesLimit = 100
)

// Import constants
const (
	// ImportBatchSize is the number of files written per SaveFiles call
	ImportBatchSize = 500

	// ImportTimeout bounds a whole snapshot import
	ImportTimeout = 30 * time.Minute
)
