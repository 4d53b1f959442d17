package system

import (
	"log"
	"sort"

	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/ecs/component"
	"github.com/milk9111/musclesim/telemetry"
)

// TelemetrySystem samples every muscle once every N fixed steps.
type TelemetrySystem struct {
	recorder *telemetry.Recorder
	clock    *Clock
	every    int
}

func NewTelemetrySystem(recorder *telemetry.Recorder, clock *Clock, every int) *TelemetrySystem {
	return &TelemetrySystem{recorder: recorder, clock: clock, every: every}
}

// SetEvery changes the sampling interval. Values below one disable sampling.
func (ts *TelemetrySystem) SetEvery(every int) {
	ts.every = every
}

func (ts *TelemetrySystem) Update(w *ecs.World) {
	if ts == nil || ts.recorder == nil || ts.every <= 0 || w == nil {
		return
	}
	if ts.clock.Tick%ts.every != 0 {
		return
	}

	var samples []telemetry.Sample
	for _, e := range w.Query(component.MuscleComponent.Kind()) {
		mc, ok := ecs.Get(w, e, component.MuscleComponent.Kind())
		if !ok || mc.Actuator == nil {
			continue
		}
		samples = append(samples, telemetry.NewSample(ts.clock.Tick, ts.clock.Time(), mc.Actuator, mc.LastErr))
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].MuscleID < samples[j].MuscleID })

	if err := ts.recorder.Write(samples); err != nil {
		log.Printf("telemetry: %v; recording stopped", err)
		ts.recorder = nil
	}
}
