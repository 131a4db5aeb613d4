package tokenstore

import "context"

// Store defines the single-slot token persistence contract.
// Implementations must be safe for concurrent use.
type Store interface {
	// Read returns the persisted token.
	// Returns ErrTokenNotFound when the slot is empty and
	// ErrStorageFailure when the medium cannot be read.
	Read(ctx context.Context) (string, error)

	// Write persists the token, replacing any prior value.
	Write(ctx context.Context, token string) error

	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}
