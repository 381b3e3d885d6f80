// Package blobstore keeps profile pictures keyed by user id. Two backends
// exist: S3-compatible object storage and a MongoDB collection.
package blobstore

import "context"

// Store maps a user id to an opaque payload.
type Store interface {
	// Put stores data under id, silently replacing any previous payload.
	Put(ctx context.Context, id string, data []byte) error

	// Get returns the payload for id or common.ErrorNotFound.
	Get(ctx context.Context, id string) ([]byte, error)
}
