package ports

import (
	"context"
	"io"
)

// BlobStore is content-addressed: identical bytes always yield the same hash and are
// stored once.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	PutFile(ctx context.Context, path string) (string, error)
	PutReader(ctx context.Context, r io.Reader) (string, error)
	// Resolve returns the physical path of hash or domain.ErrBlobMissing.
	Resolve(ctx context.Context, hash string) (string, error)
	Has(ctx context.Context, hash string) bool
}

// StagedBlobs buffers blobs for a record that does not exist yet. Nothing reaches the
// record directory before Commit; Discard undoes whatever was staged or committed.
type StagedBlobs interface {
	BlobStore
	Commit(ctx context.Context) error
	Discard() error
}
