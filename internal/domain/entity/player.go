package entity

import (
	"fmt"

	"github.com/younwookim/locomotion/internal/domain/locomotion"
)

// Player is the user-controlled character
type Player struct {
	Character
}

// NewPlayer creates a player at (x, y). spec.Rules defaults to the built-in
// player archetype.
func NewPlayer(spec Spec, x, y float64) (*Player, error) {
	if spec.Rules == nil {
		spec.Rules = locomotion.PlayerRules()
	}
	c, err := NewCharacter(spec, x, y)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &Player{Character: *c}, nil
}

// CollideGround resolves a vertical overlap of yClip units.
// Moving upward means the head hit a ceiling: the player starts falling,
// bounces down and false is returned. Otherwise the player lands and true is
// returned.
func (p *Player) CollideGround(yClip float64) bool {
	if p.VY < 0 {
		p.Manage(locomotion.ActionFall)
		p.VY = -p.VY
		p.Y += yClip
		return false
	}

	p.Manage(locomotion.ActionGround)
	p.Y -= yClip
	return true
}

// CollideWall turns the player around and pushes it out of the wall
func (p *Player) CollideWall(xClip float64) {
	switch {
	case p.IsHeld(locomotion.Left):
		p.Manage(locomotion.ActionRight)
		p.X += xClip
	case p.IsHeld(locomotion.Right):
		p.Manage(locomotion.ActionLeft)
		p.X -= xClip
	}
}

// StartFalling drops the player, e.g. after walking off a ledge
func (p *Player) StartFalling() {
	p.Manage(locomotion.ActionFall)
}

// Kill moves the player to the dead state for good
func (p *Player) Kill() {
	p.Manage(locomotion.ActionDead)
	p.dead = true
}

// ResolveGround implements Mover
func (p *Player) ResolveGround(yClip float64) bool {
	return p.CollideGround(yClip)
}

// ResolveWall implements Mover
func (p *Player) ResolveWall(xClip float64) {
	p.CollideWall(xClip)
}
