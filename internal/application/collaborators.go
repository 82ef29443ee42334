package application

import (
	"context"
	"errors"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Collaborators groups the external services the engine drives. Collections and
// Peers may be nil.
type Collaborators struct {
	Actors      ports.ActorTable
	Redirection ports.FileRedirection
	Collections ports.CollectionResolver
	Equipment   ports.Equipment
	Scaling     ports.BoneScaling
	Peers       ports.PeerSync
}

// ReservationKey is the private key equipment state is applied under. It is derived
// from a fixed name so that a later process can still unlock what an earlier one
// applied.
var ReservationKey = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/bnema/appearance-snapshots")).ID()

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultAborted = "aborted"
)

// degrade swallows unavailable-collaborator errors after logging them.
func degrade(logger *log.Logger, service string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrCollaboratorUnavailable) {
		logger.Warn("collaborator unavailable, skipping its contribution", "service", service, "err", err)
		return nil
	}
	return err
}

func redirectionAvailable(ctx context.Context, c Collaborators) bool {
	return c.Redirection != nil && c.Redirection.Available(ctx)
}

func equipmentAvailable(ctx context.Context, c Collaborators) bool {
	return c.Equipment != nil && c.Equipment.Available(ctx)
}

func scalingAvailable(ctx context.Context, c Collaborators) bool {
	return c.Scaling != nil && c.Scaling.Available(ctx)
}
