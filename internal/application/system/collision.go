package system

import (
	"math"

	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
)

// CollisionSystem moves characters through the stage's tile layer and
// reports wall and ground contacts to them
type CollisionSystem struct {
	stage *entity.Stage
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(stage *entity.Stage) *CollisionSystem {
	return &CollisionSystem{stage: stage}
}

type killer interface {
	Kill()
}

type faller interface {
	StartFalling()
}

// Move integrates the character's velocity over dt. X is resolved before Y,
// and each axis reports at most one contact per call. Large moves are split
// into substeps no longer than half a tile.
func (s *CollisionSystem) Move(m entity.Mover, dt float64) {
	c := m.Char()
	if c.IsDead() {
		return
	}

	dx, dy := c.ApplyVelocity(dt)
	n := s.substeps(dx, dy)
	hitX, hitY := false, false
	for i := 0; i < n; i++ {
		if !hitX && dx != 0 {
			c.X += dx / float64(n)
			hitX = s.resolveX(m, dx)
		}
		if !hitY && dy != 0 {
			c.Y += dy / float64(n)
			hitY = s.resolveY(m, dy)
		}
	}

	// Walked off a ledge
	if !hitY && c.IsGrounded() && !s.Supported(&c.Body) {
		startFalling(m)
	}

	if s.touchesSpike(&c.Body) {
		if k, ok := m.(killer); ok {
			k.Kill()
		}
	}
}

func startFalling(m entity.Mover) {
	if f, ok := m.(faller); ok {
		f.StartFalling()
		return
	}
	m.Char().Manage(locomotion.ActionFall)
}

// substeps returns how many pieces a move of (dx, dy) is split into
func (s *CollisionSystem) substeps(dx, dy float64) int {
	maxStep := float64(s.stage.TileSize) / 2
	if maxStep <= 0 {
		return 1
	}
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxStep))
	if n < 1 {
		n = 1
	}
	return n
}

// resolveX reports a wall contact after a horizontal move
func (s *CollisionSystem) resolveX(m entity.Mover, dx float64) bool {
	clip, ok := s.WallClip(&m.Char().Body, dx)
	if !ok {
		return false
	}
	m.ResolveWall(clip)
	return true
}

// resolveY reports a floor or ceiling contact after a vertical move
func (s *CollisionSystem) resolveY(m entity.Mover, dy float64) bool {
	clip, ok := s.GroundClip(&m.Char().Body, dy)
	if !ok {
		return false
	}
	m.ResolveGround(clip)
	return true
}

// WallClip returns how far b overlaps a solid tile in the direction of dx
func (s *CollisionSystem) WallClip(b *entity.Body, dx float64) (float64, bool) {
	ts := float64(s.stage.TileSize)
	x0, x1 := s.stage.TileSpan(b.X, b.X+b.W)
	y0, y1 := s.stage.TileSpan(b.Y, b.Y+b.H)

	if dx > 0 {
		for tx := x0; tx <= x1; tx++ {
			if s.solidColumn(tx, y0, y1) {
				return b.X + b.W - float64(tx)*ts, true
			}
		}
		return 0, false
	}
	for tx := x1; tx >= x0; tx-- {
		if s.solidColumn(tx, y0, y1) {
			return float64(tx+1)*ts - b.X, true
		}
	}
	return 0, false
}

// GroundClip returns how far b overlaps a solid tile in the direction of dy
func (s *CollisionSystem) GroundClip(b *entity.Body, dy float64) (float64, bool) {
	ts := float64(s.stage.TileSize)
	x0, x1 := s.stage.TileSpan(b.X, b.X+b.W)
	y0, y1 := s.stage.TileSpan(b.Y, b.Y+b.H)

	if dy > 0 {
		for ty := y0; ty <= y1; ty++ {
			if s.solidRow(ty, x0, x1) {
				return b.Y + b.H - float64(ty)*ts, true
			}
		}
		return 0, false
	}
	for ty := y1; ty >= y0; ty-- {
		if s.solidRow(ty, x0, x1) {
			return float64(ty+1)*ts - b.Y, true
		}
	}
	return 0, false
}

// Supported reports whether a solid tile lies directly below b
func (s *CollisionSystem) Supported(b *entity.Body) bool {
	x0, x1 := s.stage.TileSpan(b.X, b.X+b.W)
	ty, _ := s.stage.TileSpan(b.Y+b.H, b.Y+b.H+1)
	return s.solidRow(ty, x0, x1)
}

// touchesSpike reports whether b overlaps or stands on a spike tile
func (s *CollisionSystem) touchesSpike(b *entity.Body) bool {
	x0, x1 := s.stage.TileSpan(b.X, b.X+b.W)
	y0, _ := s.stage.TileSpan(b.Y, b.Y+b.H)
	below, _ := s.stage.TileSpan(b.Y+b.H, b.Y+b.H+1)
	for ty := y0; ty <= below; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if s.stage.GetTile(tx, ty).Type == entity.TileSpike {
				return true
			}
		}
	}
	return false
}

func (s *CollisionSystem) solidColumn(tx, y0, y1 int) bool {
	for ty := y0; ty <= y1; ty++ {
		if s.stage.GetTile(tx, ty).Solid {
			return true
		}
	}
	return false
}

func (s *CollisionSystem) solidRow(ty, x0, x1 int) bool {
	for tx := x0; tx <= x1; tx++ {
		if s.stage.GetTile(tx, ty).Solid {
			return true
		}
	}
	return false
}
