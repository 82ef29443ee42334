package ports

import (
	"context"

	"github.com/bnema/appearance-snapshots/internal/domain"
)

// FileRedirection is the file-redirection and meta-manipulation service.
type FileRedirection interface {
	Available(ctx context.Context) bool
	// ResourcePaths maps each resolved file path to the game paths it is bound to.
	ResourcePaths(ctx context.Context, slot int) (map[string][]string, error)
	MetaManipulations(ctx context.Context, slot int) (string, error)
	SetTemporaryOverrides(ctx context.Context, slot int, files map[string]string, manipulations string) error
	RemoveTemporaryOverrides(ctx context.Context, slot int) error
	Redraw(ctx context.Context, slot int) error
}

// CollectionResolver is an optional capability of the file-redirection service.
type CollectionResolver interface {
	CollectionFiles(ctx context.Context, collection string) (map[string]string, error)
}

// Equipment is the equipment/customization-pose service.
type Equipment interface {
	Available(ctx context.Context) bool
	State(ctx context.Context, slot int) (string, error)
	ApplyState(ctx context.Context, state string, slot int, key uint32) error
	Unlock(ctx context.Context, slot int, key uint32) error
	RevertToAutomation(ctx context.Context, slot int, key uint32) error
}

// BoneScaling is the bone-scaling service.
type BoneScaling interface {
	Available(ctx context.Context) bool
	ActiveProfile(ctx context.Context, slot int) (string, error)
	ApplyTemporaryProfile(ctx context.Context, slot int, profile string) (string, error)
	RevertBySessionID(ctx context.Context, sessionID string) error
}

// PeerSync supplies appearance data already captured for remote actors.
type PeerSync interface {
	Available(ctx context.Context) bool
	CapturedAppearance(ctx context.Context, identity string) (domain.Appearance, bool, error)
	CachedFilePath(ctx context.Context, hash string) (string, bool, error)
}

// ActorTable resolves live actors. Slots are volatile between ticks.
type ActorTable interface {
	BySlot(ctx context.Context, slot int) (domain.Actor, bool, error)
	PrimaryActor(ctx context.Context) (domain.Actor, bool, error)
}
