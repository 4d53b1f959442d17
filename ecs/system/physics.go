package system

import (
	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/physics"
)

// PhysicsSystem advances the Chipmunk space by one fixed step.
type PhysicsSystem struct {
	world *physics.World
	clock *Clock
}

func NewPhysicsSystem(world *physics.World, clock *Clock) *PhysicsSystem {
	return &PhysicsSystem{world: world, clock: clock}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil {
		return
	}
	ps.world.Step(ps.clock.Dt)
}
