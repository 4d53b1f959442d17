package system

import (
	"sort"

	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/ecs/component"
	"github.com/milk9111/musclesim/physics"
	"github.com/milk9111/musclesim/settings"
)

// MuscleRenderSystem runs the render-step update of every muscle: it refreshes
// the drawable line and keeps the selection box on the line.
type MuscleRenderSystem struct {
	world *physics.World
	prefs func() settings.Preferences
}

func NewMuscleRenderSystem(world *physics.World, prefs func() settings.Preferences) *MuscleRenderSystem {
	return &MuscleRenderSystem{world: world, prefs: prefs}
}

func (rs *MuscleRenderSystem) Update(w *ecs.World) {
	if rs == nil || w == nil {
		return
	}
	prefs := settings.Defaults().Display
	if rs.prefs != nil {
		prefs = rs.prefs()
	}

	for _, e := range w.Query(component.MuscleComponent.Kind()) {
		mc, ok := ecs.Get(w, e, component.MuscleComponent.Kind())
		if !ok || mc.Actuator == nil {
			continue
		}
		m := mc.Actuator
		line := component.FromLine(m.Render(prefs))
		if err := ecs.Add(w, e, component.LineRenderComponent.Kind(), &line); err != nil {
			panic("muscle render system: update line: " + err.Error())
		}

		if rs.world == nil {
			continue
		}
		if m.Attached() && line.Visible() {
			rs.world.AddSelector(m.ID(), m.PickBox())
		} else {
			rs.world.RemoveSelector(m.ID())
		}
	}
}

// Lines returns the current muscle lines ordered by muscle id.
func Lines(w *ecs.World) []component.LineRender {
	var out []component.LineRender
	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(_ ecs.Entity, line *component.LineRender) {
		out = append(out, *line)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MuscleID < out[j].MuscleID })
	return out
}
