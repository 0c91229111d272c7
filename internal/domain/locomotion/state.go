// Package locomotion implements the movement state machine shared by every
// character archetype.
//
// A Rules value describes an archetype (which states exist, which actions move
// between them, how held directions combine). Step is a pure function over a
// Snapshot; Machine wraps a Snapshot for callers that want to hold state.
package locomotion

import "strings"

// State is a discrete locomotion state
type State uint8

const (
	StateFalling State = iota
	StateStanding
	StateWalking
	StateJumping
	StateDying
	StateDead
)

var stateNames = [...]string{
	StateFalling:  "falling",
	StateStanding: "standing",
	StateWalking:  "walking",
	StateJumping:  "jumping",
	StateDying:    "dying",
	StateDead:     "dead",
}

// String returns the lowercase state name used in config files
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// ParseState converts a state name into a State
func ParseState(name string) (State, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// IsGrounded returns true for states that stand on the floor
func (s State) IsGrounded() bool {
	return s == StateStanding || s == StateWalking
}

// Direction is a horizontal direction
type Direction uint8

const (
	Left Direction = iota
	Right
)

// String returns "left" or "right"
func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Opposite returns the other direction
func (d Direction) Opposite() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// Sign returns -1 for Left and 1 for Right
func (d Direction) Sign() float64 {
	if d == Left {
		return -1
	}
	return 1
}

// Action is an event fed into the state machine by input or collision handling
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionStopLeft
	ActionStopRight
	ActionJump
	ActionFall
	ActionGround
	ActionDead
)

var actionNames = [...]string{
	ActionNone:      "none",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionStopLeft:  "stopleft",
	ActionStopRight: "stopright",
	ActionJump:      "jump",
	ActionFall:      "fall",
	ActionGround:    "ground",
	ActionDead:      "dead",
}

// String returns the action token
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction converts an action token into an Action.
// "falling" is accepted as an alias for "fall".
func ParseAction(token string) (Action, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "falling" {
		return ActionFall, true
	}
	for i, n := range actionNames {
		if i == int(ActionNone) {
			continue
		}
		if n == token {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// press returns the direction pressed by a, if any
func (a Action) press() (Direction, bool) {
	switch a {
	case ActionLeft:
		return Left, true
	case ActionRight:
		return Right, true
	}
	return 0, false
}

// release returns the direction released by a, if any
func (a Action) release() (Direction, bool) {
	switch a {
	case ActionStopLeft:
		return Left, true
	case ActionStopRight:
		return Right, true
	}
	return 0, false
}

// PressAction returns the action that presses d
func PressAction(d Direction) Action {
	if d == Left {
		return ActionLeft
	}
	return ActionRight
}

// ReleaseAction returns the action that releases d
func ReleaseAction(d Direction) Action {
	if d == Left {
		return ActionStopLeft
	}
	return ActionStopRight
}
