package ports

import (
	"context"
	"time"

	"github.com/bnema/appearance-snapshots/internal/domain"
)

type MigrationStore interface {
	Candidates(ctx context.Context) ([]domain.MigrationCandidate, error)
	StampVersion(ctx context.Context, name string) error
	MigrateLegacy(ctx context.Context, name string, now time.Time) (domain.LegacyMigration, error)
	MarkFailed(ctx context.Context, name string) (string, error)
	Lock(name string) (unlock func())
}

// Archiver bundles directories into one backup container at dest.
type Archiver interface {
	Archive(ctx context.Context, dirs []string, dest string) error
}
