// Package game runs the ebiten loop and switches between scenes.
package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/locomotion/internal/application/scene"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

// Game implements ebiten.Game on top of a current scene
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  uint64
	reloads <-chan string
}

// New creates a Game and enters initial. The step size is one frame at the
// configured framerate, 60 if unset.
func New(initial scene.Scene, display config.DisplayConfig) *Game {
	fps := display.Framerate
	if fps <= 0 {
		fps = 60
	}
	g := &Game{
		current: initial,
		screenW: display.ScreenWidth,
		screenH: display.ScreenHeight,
		dt:      1.0 / float64(fps),
	}
	g.current.OnEnter()
	return g
}

// WatchReloads makes Update forward paths from ch to the current scene
func (g *Game) WatchReloads(ch <-chan string) {
	g.reloads = ch
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	g.drainReloads()

	next, err := g.current.Update(g.dt)
	g.frames++
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			r, can := g.current.(scene.Reloader)
			if !can {
				continue
			}
			if err := r.Reload(path); err != nil {
				log.Printf("reload %s: %v", path, err)
			} else {
				log.Printf("reloaded %s", path)
			}
		default:
			return
		}
	}
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT overrides the step size
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Frames returns the number of completed updates
func (g *Game) Frames() uint64 {
	return g.frames
}
