// Package storage holds the blob payload backends.
//
// File metadata lives in MongoDB; the payload bytes themselves are written
// through this capability and referenced from the metadata record by an
// opaque locator string.
package storage

import "context"

// Blob writes payload bytes and answers liveness probes.
type Blob interface {
	// Put persists the payload under a freshly generated locator and returns it.
	Put(ctx context.Context, data []byte, contentType string) (locator string, err error)
	// IsAlive reports whether the backend is currently reachable.
	IsAlive(ctx context.Context) bool
}
