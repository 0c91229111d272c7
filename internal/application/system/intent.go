package system

import (
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
)

// Intent represents something that should happen to an entity on the next step
type Intent interface {
	isIntent()
}

// ActionIntent feeds an action into an entity's state machine
type ActionIntent struct {
	EntityID ecs.EntityID
	Action   locomotion.Action
}

func (ActionIntent) isIntent() {}

// JumpReleaseIntent cuts a jump short. It is ignored unless the entity is jumping.
type JumpReleaseIntent struct {
	EntityID ecs.EntityID
}

func (JumpReleaseIntent) isIntent() {}

// KillIntent kills an entity
type KillIntent struct {
	EntityID ecs.EntityID
}

func (KillIntent) isIntent() {}
