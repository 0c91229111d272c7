package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
)

func createTestSimulation(t *testing.T) (*Simulation, *ecs.World) {
	t.Helper()
	stage := createTestStage(
		"..........",
		"..........",
		"..........",
		"..........",
		"##########",
	)
	world := ecs.NewWorld()
	return NewSimulation(world, stage), world
}

func TestSimulation_Push(t *testing.T) {
	sim, world := createTestSimulation(t)
	id := world.AddPlayer(createStandingPlayer(t, 20, 64))

	sim.Push(ActionIntent{EntityID: id, Action: locomotion.ActionRight}, KillIntent{EntityID: id})
	assert.Equal(t, 2, sim.Pending())

	sim.Step(0.01)
	assert.Equal(t, 0, sim.Pending())
}

func TestSimulation_StepAppliesIntentsBeforeMoving(t *testing.T) {
	sim, world := createTestSimulation(t)
	p := createStandingPlayer(t, 20, 64)
	id := world.AddPlayer(p)

	sim.Push(ActionIntent{EntityID: id, Action: locomotion.ActionRight})
	sim.Step(0.1)

	assert.Equal(t, locomotion.StateWalking, p.State())
	assert.InDelta(t, 25.0, p.X, 1e-9)
	assert.Equal(t, 0.0, p.VY)
}

func TestSimulation_JumpRelease(t *testing.T) {
	t.Run("ignored unless jumping", func(t *testing.T) {
		sim, world := createTestSimulation(t)
		p := createStandingPlayer(t, 20, 64)
		id := world.AddPlayer(p)

		sim.Push(JumpReleaseIntent{EntityID: id})
		sim.Step(0.01)

		assert.Equal(t, locomotion.StateStanding, p.State())
	})

	t.Run("cuts a jump short", func(t *testing.T) {
		sim, world := createTestSimulation(t)
		p := createStandingPlayer(t, 20, 64)
		id := world.AddPlayer(p)

		sim.Push(ActionIntent{EntityID: id, Action: locomotion.ActionJump})
		sim.Step(0.01)
		require.Equal(t, locomotion.StateJumping, p.State())

		sim.Push(JumpReleaseIntent{EntityID: id})
		sim.Step(0.01)

		assert.Equal(t, locomotion.StateFalling, p.State())
	})
}

func TestSimulation_Kill(t *testing.T) {
	sim, world := createTestSimulation(t)
	p := createStandingPlayer(t, 20, 64)
	id := world.AddPlayer(p)

	sim.Push(KillIntent{EntityID: id}, ActionIntent{EntityID: id, Action: locomotion.ActionJump})
	sim.Step(0.1)

	assert.Equal(t, locomotion.StateDead, p.State())
	assert.Equal(t, 0.0, p.VX)
	assert.Equal(t, 0.0, p.VY)
}

func TestSimulation_UnknownEntityIsIgnored(t *testing.T) {
	sim, _ := createTestSimulation(t)

	sim.Push(
		ActionIntent{EntityID: 42, Action: locomotion.ActionJump},
		JumpReleaseIntent{EntityID: 42},
		KillIntent{EntityID: 42},
	)

	assert.NotPanics(t, func() { sim.Step(0.1) })
}

func TestSimulation_FallAndLand(t *testing.T) {
	sim, world := createTestSimulation(t)
	p := createTestPlayer(t, 20, 0)
	world.AddPlayer(p)

	var seen []locomotion.State
	p.OnTransition = func(_ *entity.Character, tr locomotion.Transition) {
		seen = append(seen, tr.To)
	}

	for i := 0; i < 300 && p.State() != locomotion.StateStanding; i++ {
		sim.Step(1.0 / 60.0)
	}

	assert.Equal(t, locomotion.StateStanding, p.State())
	assert.InDelta(t, 64.0, p.Y+p.H, 1e-9)
	assert.Equal(t, []locomotion.State{locomotion.StateStanding}, seen)

	// Standing still on the floor stays put
	for i := 0; i < 30; i++ {
		sim.Step(1.0 / 60.0)
	}
	assert.Equal(t, locomotion.StateStanding, p.State())
	assert.InDelta(t, 64.0, p.Y+p.H, 1e-9)
}

func TestSimulation_JumpArc(t *testing.T) {
	sim, world := createTestSimulation(t)
	p := createStandingPlayer(t, 20, 64)
	id := world.AddPlayer(p)
	startY := p.Y

	sim.Push(ActionIntent{EntityID: id, Action: locomotion.ActionJump})
	sim.Step(0.25)
	assert.Equal(t, locomotion.StateJumping, p.State())
	assert.InDelta(t, startY-25, p.Y, 1e-9)

	sim.Step(0.25)
	assert.Equal(t, locomotion.StateFalling, p.State())

	for i := 0; i < 600 && p.State() != locomotion.StateStanding; i++ {
		sim.Step(1.0 / 60.0)
	}
	assert.Equal(t, locomotion.StateStanding, p.State())
	assert.InDelta(t, startY, p.Y, 1e-9)
}

func TestSimulation_EnemyPatrolsToWall(t *testing.T) {
	sim, world := createTestSimulation(t)
	e := createTestEnemy(t, 40, 20)
	world.AddEnemy(e)

	for i := 0; i < 600; i++ {
		sim.Step(1.0 / 60.0)
	}

	assert.Equal(t, locomotion.StateWalking, e.State())
	assert.InDelta(t, 0.0, e.X, 1e-9)
	assert.InDelta(t, 64.0, e.Y+e.H, 1e-9)
}
