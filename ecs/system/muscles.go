package system

import (
	"sort"

	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/ecs/component"
	"github.com/milk9111/musclesim/muscle"
)

// sortedMuscles returns the live muscle actuators ordered by muscle id.
func sortedMuscles(w *ecs.World) []*muscle.Muscle {
	var out []*muscle.Muscle
	ecs.ForEach(w, component.MuscleComponent.Kind(), func(_ ecs.Entity, mc *component.Muscle) {
		if mc.Actuator != nil && !mc.Actuator.Destroyed() {
			out = append(out, mc.Actuator)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
