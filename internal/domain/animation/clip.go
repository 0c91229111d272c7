// Package animation holds per-state sprite-sheet clips and the playback
// cursor that selects the frame to draw.
package animation

import (
	"errors"
	"fmt"
	"image"

	"github.com/younwookim/locomotion/internal/domain/locomotion"
)

var (
	// ErrMissingClip is returned when a table lacks a clip for a reachable state
	ErrMissingClip = errors.New("missing animation clip")
	// ErrInvalidClip is returned for clips with negative frame counts or rates
	ErrInvalidClip = errors.New("invalid animation clip")
)

// Clip is one row of a sprite sheet
type Clip struct {
	Frames int // frame count, 0 draws nothing
	Row    int // sprite-sheet row
	FPS    int // frames per second
}

// Table maps each locomotion state to its clip
type Table map[locomotion.State]Clip

// Cover checks that the table has a valid clip for every state in states
func (t Table) Cover(states []locomotion.State) error {
	for _, s := range states {
		c, ok := t[s]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingClip, s)
		}
		if c.Frames < 0 || c.FPS < 0 || c.Row < 0 {
			return fmt.Errorf("%w: %s %+v", ErrInvalidClip, s, c)
		}
	}
	return nil
}

// Clone returns a copy of the table
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Playback advances through a clip in time
type Playback struct {
	clip    Clip
	frame   int
	elapsed float64
}

// Reset starts clip from its first frame
func (p *Playback) Reset(clip Clip) {
	p.clip = clip
	p.frame = 0
	p.elapsed = 0
}

// Advance moves the cursor forward by dt seconds, looping at the end of the clip
func (p *Playback) Advance(dt float64) {
	if p.clip.Frames <= 1 || p.clip.FPS <= 0 {
		return
	}
	p.elapsed += dt
	step := 1.0 / float64(p.clip.FPS)
	for p.elapsed >= step {
		p.elapsed -= step
		p.frame = (p.frame + 1) % p.clip.Frames
	}
}

// Clip returns the clip being played
func (p *Playback) Clip() Clip { return p.clip }

// Frame returns the current frame index within the clip
func (p *Playback) Frame() int { return p.frame }

// Elapsed returns the time accumulated toward the next frame
func (p *Playback) Elapsed() float64 { return p.elapsed }

// SourceRect returns the sprite-sheet rectangle of the current frame.
// The second result is false when the clip has no frames.
func (p *Playback) SourceRect(frameW, frameH int) (image.Rectangle, bool) {
	if p.clip.Frames <= 0 {
		return image.Rectangle{}, false
	}
	x := p.frame * frameW
	y := p.clip.Row * frameH
	return image.Rect(x, y, x+frameW, y+frameH), true
}
