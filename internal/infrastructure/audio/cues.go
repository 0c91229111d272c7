// Package audio plays short tones when characters change locomotion state.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

const defaultSampleRate = beep.SampleRate(44100)

var ErrInvalidCue = errors.New("invalid audio cue")

// Cue is a sine tone played on entry into a state
type Cue struct {
	Freq     float64
	Duration time.Duration
}

// Cues maps a state to the tone played on entering it
type Cues map[locomotion.State]Cue

// BuildCues converts the cue config into a table keyed by state
func BuildCues(cfg map[string]config.CueConfig) (Cues, error) {
	cues := make(Cues, len(cfg))
	for name, c := range cfg {
		s, ok := locomotion.ParseState(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidCue, name)
		}
		if c.Freq <= 0 || c.DurationMs <= 0 {
			return nil, fmt.Errorf("%w: %s needs a positive frequency and duration", ErrInvalidCue, name)
		}
		cues[s] = Cue{Freq: c.Freq, Duration: time.Duration(c.DurationMs) * time.Millisecond}
	}
	return cues, nil
}

// For returns the cue for a transition. Re-entries and moves between grounded
// states are silent.
func (c Cues) For(t locomotion.Transition) (Cue, bool) {
	if !t.Changed() {
		return Cue{}, false
	}
	if t.From.IsGrounded() && t.To.IsGrounded() {
		return Cue{}, false
	}
	cue, ok := c[t.To]
	return cue, ok
}

// CuePlayer mixes transition cues onto the speaker
type CuePlayer struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	cues        Cues
	mixer       *beep.Mixer
	initialized bool
}

// NewCuePlayer creates a player from the audio settings
func NewCuePlayer(cfg config.AudioConfig) (*CuePlayer, error) {
	cues, err := BuildCues(cfg.Cues)
	if err != nil {
		return nil, err
	}
	rate := defaultSampleRate
	if cfg.SampleRate > 0 {
		rate = beep.SampleRate(cfg.SampleRate)
	}
	return &CuePlayer{
		rate:  rate,
		cues:  cues,
		mixer: &beep.Mixer{},
	}, nil
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup drops every playing cue
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// OnTransition plays the cue for t, if any
func (p *CuePlayer) OnTransition(t locomotion.Transition) {
	cue, ok := p.cues.For(t)
	if !ok {
		return
	}
	p.Play(cue)
}

// Play queues a single cue on the mixer
func (p *CuePlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(p.Streamer(cue))
	speaker.Unlock()
}

// Streamer returns a finite streamer for cue
func (p *CuePlayer) Streamer(cue Cue) beep.Streamer {
	n := p.rate.N(cue.Duration)
	return beep.Take(n, NewTone(p.rate, cue.Freq, n))
}

// Tone is a sine wave with a linear fade-out over length samples
type Tone struct {
	rate   beep.SampleRate
	freq   float64
	phase  float64
	pos    int
	length int
}

// NewTone creates a tone generator
func NewTone(rate beep.SampleRate, freq float64, length int) *Tone {
	return &Tone{rate: rate, freq: freq, length: length}
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		amp := 0.2
		if t.length > 0 {
			amp *= math.Max(0, 1-float64(t.pos)/float64(t.length))
		}
		v := amp * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		if t.phase >= 1 {
			t.phase -= 1
		}
		t.pos++
	}
	return len(samples), true
}

func (t *Tone) Err() error {
	return nil
}
