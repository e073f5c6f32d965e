package storage

import (
	"github.com/simon200418/songindex/index"
)

// GenerationStore persists index generations.
// Implementations must be safe for concurrent use.
type GenerationStore interface {
	// Commit durably writes a generation and makes it the active one.
	// The previous active generation stays readable until the new one is
	// fully written; its on-disk data is then removed on a best-effort
	// basis.
	Commit(gen *index.Generation) error

	// OpenActive loads the active generation into memory.
	// Returns ErrNoActiveGeneration when nothing has been committed and
	// ErrCorruptGeneration when the stored data fails its integrity check.
	OpenActive() (*index.Generation, error)

	// ActivePath reports the directory of the active generation, if any.
	ActivePath() (string, bool)

	// Close closes the store and releases resources.
	Close() error
}
