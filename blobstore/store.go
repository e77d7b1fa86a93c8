package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when an archive does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for publishing immutable archive blobs.
type Store interface {
	// Put writes a blob atomically under the given name.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a blob in full.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
