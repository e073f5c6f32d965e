package index

import "errors"

var (
	// ErrSchemaRequired is returned when a schema is not provided.
	ErrSchemaRequired = errors.New("schema required")

	// ErrInvalidMaxAttempts indicates RetryWithBackoff was called with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
