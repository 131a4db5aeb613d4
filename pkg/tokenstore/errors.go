package tokenstore

import "errors"

var (
	// ErrTokenNotFound indicates the slot is empty.
	ErrTokenNotFound = errors.New("tokenstore.not_found")

	// ErrStorageFailure indicates the persistence medium failed.
	// Callers should treat the token as absent when they see it.
	ErrStorageFailure = errors.New("tokenstore.storage_failure")
)
