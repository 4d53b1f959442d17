package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/ecs/component"
	"github.com/milk9111/musclesim/muscle"
)

// MuscleSystem runs the fixed-step update of every muscle.
type MuscleSystem struct {
	clock *Clock
}

func NewMuscleSystem(clock *Clock) *MuscleSystem {
	return &MuscleSystem{clock: clock}
}

func (ms *MuscleSystem) Update(w *ecs.World) {
	if ms == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.MuscleComponent.Kind(), func(e ecs.Entity, mc *component.Muscle) {
		if mc.Actuator == nil {
			return
		}
		err := mc.Actuator.Step(ms.clock.Dt)
		if err != nil && mc.LastErr == nil {
			if errors.Is(err, muscle.ErrDegenerateGeometry) {
				log.Printf("muscle: %s: anchors coincide, no force applied", mc.Actuator)
			} else {
				log.Printf("muscle: %s: step: %v", mc.Actuator, err)
			}
			w.Events().Push(ecs.Event{
				Kind:   ecs.EventMuscleFault,
				Entity: e,
				Data:   fmt.Errorf("muscle %d: %w", mc.Actuator.ID(), err),
			})
		}
		mc.LastErr = err
	})
}
