package entity

import (
	"fmt"

	"github.com/younwookim/locomotion/internal/domain/locomotion"
)

// Enemy is an autonomous character. It starts falling and, with the built-in
// archetype, walks left after its first landing.
type Enemy struct {
	Character
	Kind string
}

// NewEnemy creates an enemy of the given kind. spec.Rules defaults to the
// built-in enemy archetype.
func NewEnemy(kind string, spec Spec, x, y float64) (*Enemy, error) {
	if spec.Rules == nil {
		spec.Rules = locomotion.EnemyRules()
	}
	c, err := NewCharacter(spec, x, y)
	if err != nil {
		return nil, fmt.Errorf("failed to create enemy %s: %w", kind, err)
	}
	return &Enemy{Character: *c, Kind: kind}, nil
}

// CollideGround feeds the archetype's landing actions, lands and moves the
// enemy up out of the floor
func (e *Enemy) CollideGround(yClip float64) {
	for _, a := range e.Rules().Landing {
		e.Manage(a)
	}
	e.Manage(locomotion.ActionGround)
	e.Y -= yClip
}

// CollideWall pushes the enemy back against its facing direction
func (e *Enemy) CollideWall(xClip float64) {
	if e.Facing() == locomotion.Left {
		e.X += xClip
	} else {
		e.X -= xClip
	}
}

// Kill starts the dying state for good
func (e *Enemy) Kill() {
	e.Manage(locomotion.ActionDead)
	e.dead = true
}

// ResolveGround implements Mover
func (e *Enemy) ResolveGround(yClip float64) bool {
	e.CollideGround(yClip)
	return true
}

// ResolveWall implements Mover
func (e *Enemy) ResolveWall(xClip float64) {
	e.CollideWall(xClip)
}
