package entity

// Body represents the physical body of a character.
// X, Y is the top-left corner in world units; y grows downward.
type Body struct {
	X, Y   float64
	VX, VY float64 // world units per second
	W, H   float64
}

// Rect returns the body's bounding box
func (b *Body) Rect() (x, y, w, h float64) {
	return b.X, b.Y, b.W, b.H
}

// ApplyVelocity returns the displacement for dt seconds without moving the body.
// The collision system moves each axis separately.
func (b *Body) ApplyVelocity(dt float64) (dx, dy float64) {
	return b.VX * dt, b.VY * dt
}

// SetPosition moves the body and stops it
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
	b.VX = 0
	b.VY = 0
}

// Overlaps reports whether two bodies intersect
func (b *Body) Overlaps(o *Body) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}
