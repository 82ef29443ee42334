package application

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bnema/appearance-snapshots/internal/domain"
	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/log"
)

// LifecycleController reverts sessions when the host leaves its special viewing mode.
type LifecycleController struct {
	sessions      *SessionService
	actors        ports.ActorTable
	notifier      ports.Notifier
	logger        *log.Logger
	inSpecialMode atomic.Bool
}

func NewLifecycleController(sessions *SessionService, actors ports.ActorTable, notifier ports.Notifier, logger *log.Logger) *LifecycleController {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &LifecycleController{
		sessions: sessions,
		actors:   actors,
		notifier: notifier,
		logger:   logging.OrDiscard(logger),
	}
}

// Attach subscribes to signal for as long as the returned detach func is not called.
func (c *LifecycleController) Attach(signal ports.SpecialModeSignal) (detach func()) {
	return signal.SubscribeExit(c.HandleSpecialModeExited)
}

// HandleSpecialModeExited runs before the host's default handling of the exit.
func (c *LifecycleController) HandleSpecialModeExited(ctx context.Context) {
	c.inSpecialMode.Store(false)

	count, err := c.sessions.RevertAll(ctx, true)
	if err != nil {
		c.logger.Error("automatic revert failed", "err", err)
		c.notifier.Notify(ports.NotifyError, fmt.Sprintf("Automatic revert failed: %v", err))
	}
	if count > 0 {
		c.notifier.Notify(ports.NotifyInfo, fmt.Sprintf("Reverted %d snapshot session(s) after leaving the viewing mode", count))
	}
}

// RevertAll is the user-initiated bulk revert; the primary-actor exemption never applies.
func (c *LifecycleController) RevertAll(ctx context.Context) (int, error) {
	count, err := c.sessions.RevertAll(ctx, false)
	if err != nil {
		c.notifier.Notify(ports.NotifyError, fmt.Sprintf("Revert failed: %v", err))
		return count, err
	}

	c.notifier.Notify(ports.NotifyInfo, fmt.Sprintf("Reverted %d snapshot session(s)", count))
	return count, nil
}

// Tick polls the special viewing mode slot. The result only gates affordances.
func (c *LifecycleController) Tick(ctx context.Context) bool {
	_, found, err := c.actors.BySlot(ctx, domain.SpecialModeProbeSlot)
	if err != nil {
		c.logger.Debug("poll special mode slot", "err", err)
		found = false
	}

	if previous := c.inSpecialMode.Swap(found); previous != found {
		c.logger.Debug("special viewing mode changed", "active", found)
	}
	return found
}

func (c *LifecycleController) InSpecialMode() bool {
	return c.inSpecialMode.Load()
}
