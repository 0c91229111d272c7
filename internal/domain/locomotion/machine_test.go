package locomotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(m *Machine, actions ...Action) []Transition {
	var out []Transition
	for _, a := range actions {
		if t, ok := m.Manage(a); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestNewMachine(t *testing.T) {
	m := NewMachine(PlayerRules())

	assert.Equal(t, StateFalling, m.State())
	assert.False(t, m.IsMoving())
	assert.False(t, m.IsGrounded())
	assert.Equal(t, Right, m.Facing())
}

func TestMachine_Ground(t *testing.T) {
	t.Run("falling lands standing", func(t *testing.T) {
		m := NewMachine(PlayerRules())

		tr, ok := m.Manage(ActionGround)
		require.True(t, ok)
		assert.Equal(t, Transition{From: StateFalling, To: StateStanding}, tr)
		assert.True(t, m.IsGrounded())
	})

	t.Run("falling with direction held lands walking", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionRight)

		tr, ok := m.Manage(ActionGround)
		require.True(t, ok)
		assert.Equal(t, StateWalking, tr.To)
		assert.Equal(t, StateWalking, m.State())
	})

	t.Run("ground while standing is a no-op", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround)

		_, ok := m.Manage(ActionGround)
		assert.False(t, ok)
		assert.Equal(t, StateStanding, m.State())
	})

	t.Run("ground while jumping is ignored", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround, ActionJump)

		_, ok := m.Manage(ActionGround)
		assert.False(t, ok)
		assert.Equal(t, StateJumping, m.State())
	})
}

func TestMachine_Directions(t *testing.T) {
	t.Run("press from standing walks", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround)

		tr, ok := m.Manage(ActionRight)
		require.True(t, ok)
		assert.Equal(t, StateWalking, tr.To)
		assert.True(t, m.IsHeld(Right))
		assert.Equal(t, Right, m.Facing())
	})

	t.Run("release re-enters standing", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround, ActionRight)

		tr, ok := m.Manage(ActionStopRight)
		require.True(t, ok)
		assert.Equal(t, Transition{From: StateWalking, To: StateStanding}, tr)
		assert.False(t, m.IsHeld(Right))
	})

	t.Run("release while standing restarts standing", func(t *testing.T) {
		// standing with a held flag only arises from a custom record
		snap := Snapshot{State: StateStanding, LastFacing: Left}
		snap.Held[Left] = true

		next, tr, ok := Step(PlayerRules(), snap, ActionStopLeft)
		require.True(t, ok)
		assert.Equal(t, Transition{From: StateStanding, To: StateStanding}, tr)
		assert.False(t, tr.Changed())
		assert.False(t, next.IsMoving())
	})

	t.Run("release of unheld direction is ignored", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround)

		_, ok := m.Manage(ActionStopLeft)
		assert.False(t, ok)
	})

	t.Run("repeated press is ignored", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround, ActionLeft)

		_, ok := m.Manage(ActionLeft)
		assert.False(t, ok)
	})

	t.Run("release while falling keeps falling", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionLeft)

		_, ok := m.Manage(ActionStopLeft)
		assert.False(t, ok)
		assert.Equal(t, StateFalling, m.State())
		assert.False(t, m.IsMoving())
	})

	t.Run("release while jumping keeps jumping", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround, ActionRight, ActionJump)

		_, ok := m.Manage(ActionStopRight)
		assert.False(t, ok)
		assert.Equal(t, StateJumping, m.State())
	})
}

func TestMachine_PlayerDirectionsAreExclusive(t *testing.T) {
	sequences := [][]Action{
		{ActionLeft, ActionRight},
		{ActionRight, ActionLeft, ActionRight},
		{ActionGround, ActionLeft, ActionRight, ActionStopLeft},
		{ActionLeft, ActionStopLeft, ActionRight, ActionLeft},
	}

	for _, seq := range sequences {
		m := NewMachine(PlayerRules())
		for _, a := range seq {
			m.Manage(a)
			assert.False(t, m.IsHeld(Left) && m.IsHeld(Right), "both directions held after %v", seq)
		}
	}

	m := NewMachine(PlayerRules())
	feed(m, ActionGround, ActionLeft, ActionRight)
	assert.True(t, m.IsHeld(Right))
	assert.False(t, m.IsHeld(Left))
	assert.Equal(t, Right, m.Facing())
}

func TestMachine_EnemyDirectionsAreAdditive(t *testing.T) {
	m := NewMachine(EnemyRules())
	feed(m, ActionGround, ActionLeft, ActionRight)

	assert.True(t, m.IsHeld(Left))
	assert.True(t, m.IsHeld(Right))
	// left wins while both are held
	assert.Equal(t, Left, m.Facing())

	_, ok := m.Manage(ActionStopLeft)
	assert.False(t, ok, "one direction still held")
	assert.Equal(t, StateWalking, m.State())
	assert.Equal(t, Right, m.Facing())

	tr, ok := m.Manage(ActionStopRight)
	require.True(t, ok)
	assert.Equal(t, StateStanding, tr.To)
}

func TestMachine_FacingPersistsAfterRelease(t *testing.T) {
	m := NewMachine(PlayerRules())
	feed(m, ActionGround, ActionLeft, ActionStopLeft)

	assert.Equal(t, Left, m.Facing())

	feed(m, ActionStopRight, ActionStopLeft)
	assert.Equal(t, Left, m.Facing())

	feed(m, ActionRight)
	assert.Equal(t, Right, m.Facing())
}

func TestMachine_JumpAndFall(t *testing.T) {
	tests := []struct {
		name   string
		setup  []Action
		action Action
		want   State
		fires  bool
	}{
		{"jump from standing", []Action{ActionGround}, ActionJump, StateJumping, true},
		{"jump from walking", []Action{ActionGround, ActionLeft}, ActionJump, StateJumping, true},
		{"jump while falling", nil, ActionJump, StateFalling, false},
		{"jump while jumping", []Action{ActionGround, ActionJump}, ActionJump, StateJumping, false},
		{"fall from jumping", []Action{ActionGround, ActionJump}, ActionFall, StateFalling, true},
		{"fall from walking", []Action{ActionGround, ActionRight}, ActionFall, StateFalling, true},
		{"fall while falling", nil, ActionFall, StateFalling, false},
		{"unknown action", []Action{ActionGround}, ActionNone, StateStanding, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(PlayerRules())
			feed(m, tt.setup...)

			_, ok := m.Manage(tt.action)
			assert.Equal(t, tt.fires, ok)
			assert.Equal(t, tt.want, m.State())
		})
	}
}

func TestMachine_EnemyCannotJump(t *testing.T) {
	m := NewMachine(EnemyRules())
	feed(m, ActionGround)

	_, ok := m.Manage(ActionJump)
	assert.False(t, ok)
	assert.Equal(t, StateStanding, m.State())
}

func TestMachine_TerminalStatesAbsorb(t *testing.T) {
	all := []Action{
		ActionLeft, ActionRight, ActionStopLeft, ActionStopRight,
		ActionJump, ActionFall, ActionGround, ActionDead,
	}

	t.Run("player dead", func(t *testing.T) {
		m := NewMachine(PlayerRules())
		feed(m, ActionGround, ActionRight)

		tr, ok := m.Manage(ActionDead)
		require.True(t, ok)
		assert.Equal(t, StateDead, tr.To)

		assert.Empty(t, feed(m, all...))
		assert.Equal(t, StateDead, m.State())
	})

	t.Run("enemy dying", func(t *testing.T) {
		m := NewMachine(EnemyRules())

		tr, ok := m.Manage(ActionDead)
		require.True(t, ok)
		assert.Equal(t, StateDying, tr.To)

		assert.Empty(t, feed(m, all...))
		assert.Equal(t, StateDying, m.State())
	})
}

func TestMachine_StatesStayInArchetype(t *testing.T) {
	all := []Action{
		ActionNone, ActionLeft, ActionRight, ActionStopLeft, ActionStopRight,
		ActionJump, ActionFall, ActionGround, ActionDead,
	}

	for _, rules := range []*Rules{PlayerRules(), EnemyRules()} {
		t.Run(rules.Name, func(t *testing.T) {
			// walk every action sequence up to length 4
			var walk func(s Snapshot, depth int)
			walk = func(s Snapshot, depth int) {
				require.True(t, rules.Has(s.State), "state %s outside archetype", s.State)
				if rules.ExclusiveDirections {
					require.False(t, s.Held[Left] && s.Held[Right])
				}
				if depth == 0 {
					return
				}
				for _, a := range all {
					next, tr, ok := Step(rules, s, a)
					if ok {
						require.True(t, rules.Has(tr.To))
						require.Equal(t, next.State, tr.To)
					} else {
						require.Equal(t, s.State, next.State)
					}
					walk(next, depth-1)
				}
			}
			walk(NewSnapshot(rules), 4)
		})
	}
}
