// Package scene defines the screens driven by the game loop.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit ends the game loop without reporting a failure
var ErrQuit = errors.New("quit")

// Scene is one screen of the sandbox.
//
// Update returns a non-nil Scene to switch screens and ErrQuit to stop
// the loop. Any other error is fatal.
type Scene interface {
	Update(dt float64) (next Scene, err error)
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current
	OnEnter()
	// OnExit runs when the scene is replaced or the game stops
	OnExit()
}

// Reloader is implemented by scenes that can pick up edited config files
// without restarting
type Reloader interface {
	Reload(path string) error
}
