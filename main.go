package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/musclesim/sim"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics bodies and constraints")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	creatureName := flag.String("creature", "", "creature file (path or embedded name, .json optional)")
	settingsPath := flag.String("settings", "", "settings YAML file; empty uses built-in defaults")
	scriptPath := flag.String("script", "", "tengo controller script; empty uses the built-in oscillator")
	telemetryDir := flag.String("telemetry", "", "directory for telemetry CSV output")
	watch := flag.Bool("watch", true, "reload settings and script when they change on disk")
	autostart := flag.Bool("start", false, "start the simulation immediately")
	flag.Parse()

	creature, err := sim.LoadCreature(*creatureName)
	if err != nil {
		log.Fatal(err)
	}
	s, err := sim.NewWithCreature(sim.Options{
		SettingsPath: *settingsPath,
		ScriptPath:   *scriptPath,
		TelemetryDir: *telemetryDir,
		Watch:        *watch,
	}, creature)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("close simulation: %v", err)
		}
	}()
	if *autostart {
		s.Start()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("musclesim")

	if err := ebiten.RunGame(NewGame(s, *debug)); err != nil {
		log.Fatal(err)
	}
}
