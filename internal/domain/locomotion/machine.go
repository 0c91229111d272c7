package locomotion

// Snapshot is the full locomotion record of one character
type Snapshot struct {
	State      State
	Held       [2]bool // indexed by Direction
	LastFacing Direction
}

// NewSnapshot returns the spawn record for an archetype
func NewSnapshot(r *Rules) Snapshot {
	return Snapshot{State: r.Initial, LastFacing: Right}
}

// IsMoving returns true if any direction is held
func (s Snapshot) IsMoving() bool {
	return s.Held[Left] || s.Held[Right]
}

// Facing returns the held direction (left first), or the last pressed one
func (s Snapshot) Facing() Direction {
	switch {
	case s.Held[Left]:
		return Left
	case s.Held[Right]:
		return Right
	}
	return s.LastFacing
}

// Transition is a confirmed state entry. Every transition restarts the
// animation of To, including re-entries where From == To.
type Transition struct {
	From State
	To   State
}

// Changed returns true if the logical state differs after the transition
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Step applies a to s under r. It returns the new record and, when the
// character must (re-)enter a state, the transition to apply.
// Actions that match no rule leave the record unchanged.
func Step(r *Rules, s Snapshot, a Action) (Snapshot, Transition, bool) {
	if r.IsTerminal(s.State) {
		return s, Transition{}, false
	}
	if d, ok := a.press(); ok {
		return press(r, s, d)
	}
	if d, ok := a.release(); ok {
		return release(r, s, d)
	}

	to, ok := r.lookup(s.State, a)
	if !ok || to == s.State {
		return s, Transition{}, false
	}
	if to == StateStanding && s.IsMoving() && r.Has(StateWalking) {
		to = StateWalking
	}

	t := Transition{From: s.State, To: to}
	s.State = to
	return s, t, true
}

func press(r *Rules, s Snapshot, d Direction) (Snapshot, Transition, bool) {
	if s.Held[d] {
		return s, Transition{}, false
	}
	if r.ExclusiveDirections {
		s.Held[d.Opposite()] = false
	}
	s.Held[d] = true
	s.LastFacing = d

	if !r.Has(StateWalking) {
		return s, Transition{}, false
	}
	switch s.State {
	case StateStanding, StateWalking:
		t := Transition{From: s.State, To: StateWalking}
		s.State = StateWalking
		return s, t, true
	}
	return s, Transition{}, false
}

func release(r *Rules, s Snapshot, d Direction) (Snapshot, Transition, bool) {
	if !s.Held[d] {
		return s, Transition{}, false
	}
	s.Held[d] = false
	if s.IsMoving() || r.IsUninterruptible(s.State) {
		return s, Transition{}, false
	}

	to := s.State
	if to == StateWalking && r.Has(StateStanding) {
		to = StateStanding
	}
	t := Transition{From: s.State, To: to}
	s.State = to
	return s, t, true
}

// Machine holds the locomotion record of one character
type Machine struct {
	rules *Rules
	snap  Snapshot
}

// NewMachine creates a machine in the archetype's initial state
func NewMachine(r *Rules) *Machine {
	return &Machine{rules: r, snap: NewSnapshot(r)}
}

// Manage applies an action and reports the transition the owner must apply
func (m *Machine) Manage(a Action) (Transition, bool) {
	var (
		t  Transition
		ok bool
	)
	m.snap, t, ok = Step(m.rules, m.snap, a)
	return t, ok
}

// State returns the current state
func (m *Machine) State() State { return m.snap.State }

// Snapshot returns a copy of the current record
func (m *Machine) Snapshot() Snapshot { return m.snap }

// Rules returns the archetype the machine runs
func (m *Machine) Rules() *Rules { return m.rules }

// IsMoving returns true if any direction is held
func (m *Machine) IsMoving() bool { return m.snap.IsMoving() }

// IsGrounded returns true while standing or walking
func (m *Machine) IsGrounded() bool { return m.snap.State.IsGrounded() }

// IsHeld returns true if d is held
func (m *Machine) IsHeld(d Direction) bool { return m.snap.Held[d] }

// Facing returns the facing direction and remembers it
func (m *Machine) Facing() Direction {
	m.snap.LastFacing = m.snap.Facing()
	return m.snap.LastFacing
}
