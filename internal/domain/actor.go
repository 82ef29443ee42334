package domain

import (
	"fmt"
	"strings"
)

// ActorKind is closed: every actor the host reports is exactly one of these.
type ActorKind int

const (
	ActorKindUnknown ActorKind = iota
	ActorKindPlayer
	ActorKindPeer
	ActorKindNpcCharacterLike
)

// Slots reserved by the host for its special viewing mode actors.
const (
	SpecialModeSlotFirst = 200
	SpecialModeSlotLimit = 249
	SpecialModeProbeSlot = 201
)

func (k ActorKind) String() string {
	switch k {
	case ActorKindPlayer:
		return "player"
	case ActorKindPeer:
		return "peer"
	case ActorKindNpcCharacterLike:
		return "npc"
	default:
		return "unknown"
	}
}

func ParseActorKind(raw string) (ActorKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "player":
		return ActorKindPlayer, nil
	case "peer":
		return ActorKindPeer, nil
	case "npc", "npc_character", "character":
		return ActorKindNpcCharacterLike, nil
	default:
		return ActorKindUnknown, fmt.Errorf("unsupported actor kind %q", raw)
	}
}

type Actor struct {
	Slot    int
	Address uint64
	Name    string
	Kind    ActorKind
}

// IsLocal reports whether the actor's state can be introspected directly. Peer state
// comes from the sync collaborator instead.
func (a Actor) IsLocal() bool {
	return a.Kind != ActorKindPeer
}

func (a Actor) SameObject(other Actor) bool {
	return a.Address != 0 && a.Address == other.Address
}

func IsSpecialModeSlot(slot int) bool {
	return slot >= SpecialModeSlotFirst && slot < SpecialModeSlotLimit
}
