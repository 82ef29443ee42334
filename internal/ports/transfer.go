package ports

import (
	"context"
	"io"

	"github.com/bnema/appearance-snapshots/internal/domain"
)

// ContainerCodec reads and writes the portable snapshot container.
type ContainerCodec interface {
	Encode(ctx context.Context, w io.Writer, bundle domain.Bundle) error
	// Decode streams every embedded file into blobs and returns the bundle with hashes set.
	Decode(ctx context.Context, r io.Reader, blobs BlobStore) (domain.Bundle, error)
}

// ModPackWriter converts a bundle into a third-party mod tool's package layout.
type ModPackWriter interface {
	Write(ctx context.Context, w io.Writer, name string, bundle domain.Bundle) error
}
