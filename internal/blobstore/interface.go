package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists for an id.
var ErrNotFound = errors.New("blob not found")

// ErrDuplicateID is returned when a Put would overwrite an existing blob.
// Ids are generated to be unique, so hitting this means a broken invariant
// upstream rather than a normal storage error.
var ErrDuplicateID = errors.New("blob id already exists")

// BlobStore is the byte-storage abstraction used by the gallery service.
// Blobs are keyed by image id.
type BlobStore interface {
	Put(ctx context.Context, id string, r io.Reader) (int64, error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Clear(ctx context.Context) error
}
