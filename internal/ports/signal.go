package ports

import "context"

// SpecialModeExitHandler runs before the host's default handling of the exit.
type SpecialModeExitHandler func(ctx context.Context)

type SpecialModeSignal interface {
	SubscribeExit(handler SpecialModeExitHandler) (unsubscribe func())
}
