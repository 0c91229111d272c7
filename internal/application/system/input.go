package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

// Keys is the held state of the movement keys
type Keys struct {
	Left  bool
	Right bool
	Jump  bool
}

// InputState holds the raw input for one frame
type InputState struct {
	Keys            Keys
	HasGamepad      bool
	Axis            float64 // horizontal stick, -1..1
	PadJumpPressed  bool
	PadJumpReleased bool
}

// InputSystem turns raw keyboard and gamepad input into intents. Only
// changes produce intents.
type InputSystem struct {
	config   config.InputConfig
	prev     Keys
	axisZone int
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg config.InputConfig) *InputSystem {
	return &InputSystem{config: cfg}
}

// GetInput reads the current input state from ebiten
func (s *InputSystem) GetInput() InputState {
	in := InputState{
		Keys: Keys{
			Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
			Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
			Jump: ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) ||
				ebiten.IsKeyPressed(ebiten.KeySpace),
		},
	}

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return in
	}
	id := ids[0]
	button := ebiten.GamepadButton(s.config.JumpButton)
	in.HasGamepad = true
	in.Axis = ebiten.GamepadAxisValue(id, 0)
	in.PadJumpPressed = inpututil.IsGamepadButtonJustPressed(id, button)
	in.PadJumpReleased = inpututil.IsGamepadButtonJustReleased(id, button)
	return in
}

// Poll reads input and returns the intents for the given entity
func (s *InputSystem) Poll(id ecs.EntityID) []Intent {
	return s.Update(id, s.GetInput())
}

// Update compares in with the previous frame and returns the intents for id
func (s *InputSystem) Update(id ecs.EntityID, in InputState) []Intent {
	var intents []Intent
	push := func(actions ...locomotion.Action) {
		for _, a := range actions {
			intents = append(intents, ActionIntent{EntityID: id, Action: a})
		}
	}

	actions, released := KeyActions(s.prev, in.Keys)
	push(actions...)
	if released {
		intents = append(intents, JumpReleaseIntent{EntityID: id})
	}
	s.prev = in.Keys

	if in.HasGamepad {
		if zone := AxisZone(in.Axis, s.config.Deadzone); zone != s.axisZone {
			s.axisZone = zone
			push(AxisActions(in.Axis, s.config.Deadzone)...)
		}
		if in.PadJumpPressed {
			push(locomotion.ActionJump)
		}
		if in.PadJumpReleased {
			intents = append(intents, JumpReleaseIntent{EntityID: id})
		}
	}

	return intents
}

// Reset forgets the previous frame, e.g. after a restart
func (s *InputSystem) Reset() {
	s.prev = Keys{}
	s.axisZone = 0
}

// KeyActions returns the actions for the key changes between two frames.
// Releases come before presses. released is true if jump was let go.
func KeyActions(prev, cur Keys) (actions []locomotion.Action, released bool) {
	if prev.Left && !cur.Left {
		actions = append(actions, locomotion.ActionStopLeft)
	}
	if prev.Right && !cur.Right {
		actions = append(actions, locomotion.ActionStopRight)
	}
	if !prev.Left && cur.Left {
		actions = append(actions, locomotion.ActionLeft)
	}
	if !prev.Right && cur.Right {
		actions = append(actions, locomotion.ActionRight)
	}
	if !prev.Jump && cur.Jump {
		actions = append(actions, locomotion.ActionJump)
	}
	return actions, prev.Jump && !cur.Jump
}

// AxisZone classifies a stick value: -1 left, 0 inside the deadzone, 1 right
func AxisZone(value, deadzone float64) int {
	switch {
	case value == 0 || math.Abs(value) < deadzone:
		return 0
	case value < 0:
		return -1
	default:
		return 1
	}
}

// AxisActions returns the actions for a stick value
func AxisActions(value, deadzone float64) []locomotion.Action {
	switch AxisZone(value, deadzone) {
	case -1:
		return []locomotion.Action{locomotion.ActionLeft, locomotion.ActionStopRight}
	case 1:
		return []locomotion.Action{locomotion.ActionRight, locomotion.ActionStopLeft}
	default:
		return []locomotion.Action{locomotion.ActionStopLeft, locomotion.ActionStopRight}
	}
}
