package state

// GameState is the sandbox's top-level mode
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Simulates returns true if characters advance in this mode.
// A dead player keeps animating its death while the overlay is shown.
func (s GameState) Simulates() bool {
	return s == StatePlaying || s == StateGameOver
}

// TogglePause switches between playing and paused. Other modes are unchanged.
func (s GameState) TogglePause() GameState {
	switch s {
	case StatePlaying:
		return StatePaused
	case StatePaused:
		return StatePlaying
	}
	return s
}
