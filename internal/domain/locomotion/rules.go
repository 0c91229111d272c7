package locomotion

import (
	"errors"
	"fmt"
)

// ErrInvalidRules is returned when a rule table is inconsistent
var ErrInvalidRules = errors.New("invalid locomotion rules")

// Rule moves a character from any state in From to To when On is received.
// An empty From matches every non-terminal state.
type Rule struct {
	On   Action
	From []State
	To   State
}

func (r Rule) matches(s State) bool {
	if len(r.From) == 0 {
		return true
	}
	for _, f := range r.From {
		if f == s {
			return true
		}
	}
	return false
}

// Rules describes one character archetype
type Rules struct {
	Name    string
	States  []State
	Initial State

	// ExclusiveDirections makes a new direction press clear the opposite one
	ExclusiveDirections bool

	// Uninterruptible states are not re-entered when the last direction is released
	Uninterruptible []State

	// Terminal states absorb every action
	Terminal []State

	// Landing actions are fed before "ground" on a floor collision
	Landing []Action

	Transitions []Rule
}

// PlayerRules returns the built-in player archetype
func PlayerRules() *Rules {
	moving := []State{StateFalling, StateStanding, StateWalking, StateJumping}
	return &Rules{
		Name:                "player",
		States:              []State{StateFalling, StateStanding, StateWalking, StateJumping, StateDead},
		Initial:             StateFalling,
		ExclusiveDirections: true,
		Uninterruptible:     []State{StateFalling, StateJumping},
		Terminal:            []State{StateDead},
		Transitions: []Rule{
			{On: ActionJump, From: []State{StateStanding, StateWalking}, To: StateJumping},
			{On: ActionFall, From: []State{StateStanding, StateWalking, StateJumping}, To: StateFalling},
			{On: ActionGround, From: []State{StateFalling}, To: StateStanding},
			{On: ActionDead, From: moving, To: StateDead},
		},
	}
}

// EnemyRules returns the built-in enemy archetype
func EnemyRules() *Rules {
	return &Rules{
		Name:            "enemy",
		States:          []State{StateFalling, StateStanding, StateWalking, StateDying},
		Initial:         StateFalling,
		Uninterruptible: []State{StateFalling},
		Terminal:        []State{StateDying},
		Landing:         []Action{ActionLeft},
		Transitions: []Rule{
			{On: ActionFall, From: []State{StateStanding, StateWalking}, To: StateFalling},
			{On: ActionGround, From: []State{StateFalling}, To: StateStanding},
			{On: ActionDead, To: StateDying},
		},
	}
}

// Has reports whether s belongs to the archetype
func (r *Rules) Has(s State) bool {
	return containsState(r.States, s)
}

// IsTerminal reports whether s absorbs every action
func (r *Rules) IsTerminal(s State) bool {
	return containsState(r.Terminal, s)
}

// IsUninterruptible reports whether releasing all directions leaves s alone
func (r *Rules) IsUninterruptible(s State) bool {
	return containsState(r.Uninterruptible, s)
}

// Validate checks that every state the table mentions is part of the
// archetype and that "dead" reaches a terminal state from every other state.
func (r *Rules) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil rules", ErrInvalidRules)
	}
	if len(r.States) == 0 {
		return fmt.Errorf("%w: %s has no states", ErrInvalidRules, r.Name)
	}
	if !r.Has(r.Initial) {
		return fmt.Errorf("%w: %s initial state %s not in state set", ErrInvalidRules, r.Name, r.Initial)
	}
	for _, s := range r.Uninterruptible {
		if !r.Has(s) {
			return fmt.Errorf("%w: %s uninterruptible state %s not in state set", ErrInvalidRules, r.Name, s)
		}
	}
	for _, s := range r.Terminal {
		if !r.Has(s) {
			return fmt.Errorf("%w: %s terminal state %s not in state set", ErrInvalidRules, r.Name, s)
		}
	}
	for i, t := range r.Transitions {
		if t.On == ActionNone {
			return fmt.Errorf("%w: %s transition %d has no action", ErrInvalidRules, r.Name, i)
		}
		if _, ok := t.On.press(); ok {
			return fmt.Errorf("%w: %s transition %d uses direction action %s", ErrInvalidRules, r.Name, i, t.On)
		}
		if _, ok := t.On.release(); ok {
			return fmt.Errorf("%w: %s transition %d uses direction action %s", ErrInvalidRules, r.Name, i, t.On)
		}
		if !r.Has(t.To) {
			return fmt.Errorf("%w: %s transition %d targets unknown state %s", ErrInvalidRules, r.Name, i, t.To)
		}
		for _, f := range t.From {
			if !r.Has(f) {
				return fmt.Errorf("%w: %s transition %d starts from unknown state %s", ErrInvalidRules, r.Name, i, f)
			}
		}
	}
	for _, a := range r.Landing {
		if a == ActionNone || a == ActionGround {
			return fmt.Errorf("%w: %s landing action %s not allowed", ErrInvalidRules, r.Name, a)
		}
	}
	return r.validateDeath()
}

func (r *Rules) validateDeath() error {
	if len(r.Terminal) == 0 {
		return fmt.Errorf("%w: %s has no terminal state", ErrInvalidRules, r.Name)
	}
	for _, s := range r.States {
		if r.IsTerminal(s) {
			continue
		}
		to, ok := r.lookup(s, ActionDead)
		if !ok || !r.IsTerminal(to) {
			return fmt.Errorf("%w: %s dead from %s does not reach a terminal state", ErrInvalidRules, r.Name, s)
		}
	}
	return nil
}

// Reachable returns every state a Step can report, in declaration order.
// The animation table of a character must cover all of them.
func (r *Rules) Reachable() []State {
	seen := map[State]bool{r.Initial: true}
	for _, t := range r.Transitions {
		seen[t.To] = true
	}
	if r.Has(StateWalking) && r.Has(StateStanding) {
		// direction presses and releases move between these two
		if seen[StateStanding] || seen[StateWalking] {
			seen[StateStanding] = true
			seen[StateWalking] = true
		}
	}

	out := make([]State, 0, len(seen))
	for _, s := range r.States {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

func (r *Rules) lookup(s State, a Action) (State, bool) {
	for _, t := range r.Transitions {
		if t.On != a {
			continue
		}
		if len(t.From) == 0 && r.IsTerminal(s) {
			continue
		}
		if t.matches(s) {
			return t.To, true
		}
	}
	return s, false
}

func containsState(list []State, s State) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
