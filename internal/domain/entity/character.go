package entity

import (
	"fmt"

	"github.com/younwookim/locomotion/internal/domain/animation"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
)

// jumpEpsilon absorbs the rounding left by subtracting frame steps from the
// jump duration
const jumpEpsilon = 1e-9

// Physics holds per-character movement constants
type Physics struct {
	WalkSpeed    float64 // horizontal speed while moving
	JumpSpeed    float64 // upward speed while jumping, downward acceleration while falling
	JumpDuration float64 // seconds a jump is sustained
}

// Spec describes how to build a character
type Spec struct {
	Name       string
	Rules      *locomotion.Rules
	Physics    Physics
	Animations animation.Table
	Width      float64
	Height     float64
}

// Character is the state shared by players and enemies
type Character struct {
	Body

	Name      string
	Physics   Physics
	JumpTimer float64 // valid only while jumping

	machine  *locomotion.Machine
	anims    animation.Table
	playback animation.Playback
	playing  locomotion.State
	dead     bool

	// OnTransition is called after every applied transition
	OnTransition func(c *Character, t locomotion.Transition)
}

// NewCharacter validates spec and creates a character at (x, y) in its initial state
func NewCharacter(spec Spec, x, y float64) (*Character, error) {
	if err := spec.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("character %s: %w", spec.Name, err)
	}
	if err := spec.Animations.Cover(spec.Rules.Reachable()); err != nil {
		return nil, fmt.Errorf("character %s: %w", spec.Name, err)
	}

	c := &Character{
		Body:    Body{X: x, Y: y, W: spec.Width, H: spec.Height},
		Name:    spec.Name,
		Physics: spec.Physics,
		machine: locomotion.NewMachine(spec.Rules),
		anims:   spec.Animations.Clone(),
	}
	c.TransitionState(c.machine.State())
	return c, nil
}

// Manage feeds an action into the state machine and applies the resulting
// transition. It returns true if a transition was applied.
func (c *Character) Manage(a locomotion.Action) bool {
	t, ok := c.machine.Manage(a)
	if !ok {
		return false
	}
	c.TransitionState(t.To)
	if c.OnTransition != nil {
		c.OnTransition(c, t)
	}
	return true
}

// TransitionState restarts the animation for s. Entering jumping also
// restarts the jump timer. It returns false, doing nothing, if s has no clip.
func (c *Character) TransitionState(s locomotion.State) bool {
	clip, ok := c.anims[s]
	if !ok {
		return false
	}
	c.playback.Reset(clip)
	c.playing = s
	if s == locomotion.StateJumping {
		c.JumpTimer = c.Physics.JumpDuration
	}
	return true
}

// UpdateVelocity applies the velocity rule of the current state
func (c *Character) UpdateVelocity(dt float64) {
	c.updateHorizontal()

	switch c.machine.State() {
	case locomotion.StateStanding, locomotion.StateWalking:
		c.VY = 0
	case locomotion.StateFalling:
		c.VY += c.Physics.JumpSpeed * dt
	case locomotion.StateJumping:
		c.VY = -c.Physics.JumpSpeed
		c.JumpTimer -= dt
		if c.JumpTimer <= jumpEpsilon {
			c.Manage(locomotion.ActionFall)
		}
	case locomotion.StateDying, locomotion.StateDead:
		c.VX = 0
		c.VY = 0
	}
}

// updateHorizontal derives VX from the state and facing direction
func (c *Character) updateHorizontal() {
	speed := c.Physics.WalkSpeed * c.machine.Facing().Sign()

	switch c.machine.State() {
	case locomotion.StateWalking:
		c.VX = speed
	case locomotion.StateFalling, locomotion.StateJumping:
		if c.machine.IsMoving() {
			c.VX = speed
		} else {
			c.VX = 0
		}
	default:
		c.VX = 0
	}
}

// Animate advances the animation playback
func (c *Character) Animate(dt float64) {
	c.playback.Advance(dt)
}

// State returns the current locomotion state
func (c *Character) State() locomotion.State { return c.machine.State() }

// Playing returns the state whose animation is playing
func (c *Character) Playing() locomotion.State { return c.playing }

// Playback returns the animation cursor
func (c *Character) Playback() *animation.Playback { return &c.playback }

// Clip returns the clip for s
func (c *Character) Clip(s locomotion.State) (animation.Clip, bool) {
	clip, ok := c.anims[s]
	return clip, ok
}

// Snapshot returns the locomotion record
func (c *Character) Snapshot() locomotion.Snapshot { return c.machine.Snapshot() }

// Rules returns the archetype
func (c *Character) Rules() *locomotion.Rules { return c.machine.Rules() }

// IsMoving returns true if a direction is held
func (c *Character) IsMoving() bool { return c.machine.IsMoving() }

// IsGrounded returns true while standing or walking
func (c *Character) IsGrounded() bool { return c.machine.IsGrounded() }

// IsHeld returns true if d is held
func (c *Character) IsHeld(d locomotion.Direction) bool { return c.machine.IsHeld(d) }

// Facing returns the facing direction
func (c *Character) Facing() locomotion.Direction { return c.machine.Facing() }

// IsDead returns true once the character has been killed
func (c *Character) IsDead() bool { return c.dead }

// SetAnimations replaces the animation table and restarts the current clip
func (c *Character) SetAnimations(table animation.Table) error {
	if err := table.Cover(c.Rules().Reachable()); err != nil {
		return fmt.Errorf("character %s: %w", c.Name, err)
	}
	c.anims = table.Clone()
	c.TransitionState(c.playing)
	return nil
}

// Mover is a character the collision system can push out of walls
type Mover interface {
	Char() *Character
	// ResolveGround handles a vertical overlap. It returns true for a floor landing.
	ResolveGround(yClip float64) bool
	ResolveWall(xClip float64)
}

// Char returns the character itself
func (c *Character) Char() *Character { return c }
