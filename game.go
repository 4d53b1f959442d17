package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/physics"
	"github.com/milk9111/musclesim/render"
	"github.com/milk9111/musclesim/sim"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit = 40
)

type Game struct {
	frames int
	debug  bool
	paused bool

	sim    *sim.Simulation
	camera render.Camera
	status string
}

func NewGame(s *sim.Simulation, debug bool) *Game {
	return &Game{
		sim:    s,
		debug:  debug,
		camera: render.NewCamera(baseWidth, baseHeight, pixelsPerUnit),
	}
}

func (g *Game) Update() error {
	g.frames++

	g.handleInput()
	if !g.paused {
		g.sim.Advance(1 / float64(ebiten.TPS()))
	}
	g.sim.Update()
	for _, evt := range g.sim.Events() {
		log.Printf("game: %s: %v", evt.Kind, evt.Data)
		if evt.Kind == ecs.EventMuscleFault {
			g.status = fmt.Sprint(evt.Data)
		}
	}

	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if !g.sim.Started() {
			g.sim.Start()
			log.Printf("game: simulation started")
		} else {
			g.paused = !g.paused
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		store := g.sim.Store()
		prefs := store.Preferences()
		prefs.ShowMuscles = !prefs.ShowMuscles
		store.SetPreferences(prefs)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		point := physics.FromVector(g.camera.ToWorld(float64(x), float64(y)))
		if m, ok := g.sim.Pick(point); ok {
			g.status = fmt.Sprintf("muscle %d: %s %.1f / %.1f", m.ID(), m.Action(), m.Force(), m.Data().Strength)
			log.Printf("game: picked %v", m)
		} else {
			g.status = ""
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Whitesmoke)

	if g.debug {
		render.DrawSpace(screen, g.sim.Physics().Space(), g.camera)
	}
	for _, line := range g.sim.Lines() {
		render.DrawLine(screen, line, g.camera)
	}

	state := "press space to start"
	switch {
	case g.paused:
		state = "paused"
	case g.sim.Started():
		state = "running"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Tick: %d    %s\n%s",
		g.frames, ebiten.ActualFPS(), g.sim.Tick(), state, g.status))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
