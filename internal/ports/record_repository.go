package ports

import (
	"context"

	"github.com/bnema/appearance-snapshots/internal/domain"
)

type RecordRepository interface {
	List(ctx context.Context) ([]domain.Snapshot, error)
	Get(ctx context.Context, name string) (domain.Snapshot, error)
	// FindBySource looks a record up by its case-insensitive source identity.
	FindBySource(ctx context.Context, source string) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Rename(ctx context.Context, from, to string) error
	Delete(ctx context.Context, name string) error
	Blobs(name string) BlobStore
	StageBlobs(name string) (StagedBlobs, error)
	// Lock takes the advisory lock of one record directory.
	Lock(name string) (unlock func())
}
