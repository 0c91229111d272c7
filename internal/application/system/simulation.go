package system

import (
	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
)

// Simulation advances every character in a world by fixed steps
type Simulation struct {
	world     *ecs.World
	stage     *entity.Stage
	collision *CollisionSystem
	intents   []Intent
}

// NewSimulation creates a simulation over world and stage
func NewSimulation(world *ecs.World, stage *entity.Stage) *Simulation {
	return &Simulation{
		world:     world,
		stage:     stage,
		collision: NewCollisionSystem(stage),
	}
}

// World returns the simulated world
func (s *Simulation) World() *ecs.World { return s.world }

// Stage returns the simulated stage
func (s *Simulation) Stage() *entity.Stage { return s.stage }

// Push queues intents for the next step
func (s *Simulation) Push(intents ...Intent) {
	s.intents = append(s.intents, intents...)
}

// Pending returns the number of queued intents
func (s *Simulation) Pending() int {
	return len(s.intents)
}

// Step applies queued intents in arrival order, then for each character in
// id order updates velocity, moves and collides it and advances its animation
func (s *Simulation) Step(dt float64) {
	s.applyIntents()

	for _, id := range s.world.IDs() {
		m := s.world.Characters[id]
		c := m.Char()
		c.UpdateVelocity(dt)
		s.collision.Move(m, dt)
		c.Animate(dt)
	}
}

func (s *Simulation) applyIntents() {
	intents := s.intents
	s.intents = nil

	for _, intent := range intents {
		switch i := intent.(type) {
		case ActionIntent:
			if c, ok := s.world.Character(i.EntityID); ok {
				c.Manage(i.Action)
			}
		case JumpReleaseIntent:
			if c, ok := s.world.Character(i.EntityID); ok && c.State() == locomotion.StateJumping {
				c.Manage(locomotion.ActionFall)
			}
		case KillIntent:
			if k, ok := s.world.Characters[i.EntityID].(killer); ok {
				k.Kill()
			}
		}
	}
}
