// Command musclesim runs a creature without a window and records telemetry.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/musclesim/sim"
)

func main() {
	creatureName := flag.String("creature", "", "creature file (path or embedded name, .json optional)")
	settingsPath := flag.String("settings", "", "settings YAML file; empty uses built-in defaults")
	scriptPath := flag.String("script", "", "tengo controller script; empty uses the built-in oscillator")
	telemetryDir := flag.String("telemetry", "telemetry", "directory for telemetry CSV output; empty disables it")
	steps := flag.Int("steps", 600, "number of fixed steps to run")
	flag.Parse()

	if err := run(*creatureName, sim.Options{
		SettingsPath: *settingsPath,
		ScriptPath:   *scriptPath,
		TelemetryDir: *telemetryDir,
	}, *steps); err != nil {
		log.Fatal(err)
	}
}

func run(creatureName string, opts sim.Options, steps int) error {
	if steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", steps)
	}
	creature, err := sim.LoadCreature(creatureName)
	if err != nil {
		return err
	}
	s, err := sim.NewWithCreature(opts, creature)
	if err != nil {
		return err
	}

	s.Start()
	for i := 0; i < steps; i++ {
		s.FixedUpdate()
	}

	for _, m := range s.Muscles() {
		start, end := m.Start().Center(), m.End().Center()
		fmt.Fprintf(os.Stdout, "muscle %d: %s force=%.2f start=(%.2f, %.2f) end=(%.2f, %.2f)\n",
			m.ID(), m.Action(), m.Force(), start.X, start.Y, end.X, end.Y)
	}
	log.Printf("musclesim: ran %d steps (t=%.2fs)", s.Tick(), float64(s.Tick())*s.Store().Config().Physics.Dt)
	return s.Close()
}
