package system

import (
	"log"

	"github.com/milk9111/musclesim/controller"
	"github.com/milk9111/musclesim/ecs"
)

// ControllerSystem lets a script set each muscle's intensity and action
// before the muscles step.
type ControllerSystem struct {
	controller *controller.Controller
	clock      *Clock
	lastErr    string
}

func NewControllerSystem(c *controller.Controller, clock *Clock) *ControllerSystem {
	return &ControllerSystem{controller: c, clock: clock}
}

func (cs *ControllerSystem) Update(w *ecs.World) {
	if cs == nil || cs.controller == nil || w == nil {
		return
	}
	err := cs.controller.Update(cs.clock.Tick, cs.clock.Time(), sortedMuscles(w))
	if err == nil {
		cs.lastErr = ""
		return
	}
	// a broken script fails every step; report it once
	if msg := err.Error(); msg != cs.lastErr {
		log.Printf("controller: tick %d: %v", cs.clock.Tick, err)
		cs.lastErr = msg
	}
}
