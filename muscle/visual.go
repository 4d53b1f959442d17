package muscle

import (
	"image/color"
	"math"

	"github.com/milk9111/musclesim/common"
	"github.com/milk9111/musclesim/settings"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	LineWidth    = 0.5
	MinLineWidth = 0.5
	MaxLineWidth = 1.5

	strengthEpsilon = 0.000001
)

// Material is the look of a muscle line.
type Material int

const (
	MaterialDefault Material = iota
	MaterialRed
	MaterialBlue
	MaterialInvisible
)

func (m Material) String() string {
	switch m {
	case MaterialRed:
		return "red"
	case MaterialBlue:
		return "blue"
	case MaterialInvisible:
		return "invisible"
	default:
		return "default"
	}
}

// Color returns the draw color for the material.
func (m Material) Color() color.Color {
	switch m {
	case MaterialRed:
		return colornames.Red
	case MaterialBlue:
		return colornames.Royalblue
	case MaterialInvisible:
		return color.Transparent
	default:
		return colornames.Firebrick
	}
}

// Appearance is the presentational state of a muscle line.
type Appearance struct {
	Material Material
	Width    float64
}

// Visible reports whether anything should be drawn.
func (a Appearance) Visible() bool {
	return a.Material != MaterialInvisible
}

var invisible = Appearance{Material: MaterialInvisible, Width: MinLineWidth}

// Line is everything a renderer needs to draw one muscle.
type Line struct {
	ID         int
	Start      r3.Vec
	End        r3.Vec
	Appearance Appearance
}

// Alpha is the commanded force as a fraction of the strength, in [0, 1].
func (m *Muscle) Alpha() float64 {
	return common.Clamp(m.force/math.Max(m.data.Strength, strengthEpsilon), 0, 1)
}

// Visual derives the line appearance from the commanded force and the
// display preferences.
func (m *Muscle) Visual(prefs settings.Preferences) Appearance {
	if !m.living || !prefs.ShowMuscles {
		return invisible
	}
	if !m.showContraction {
		return Appearance{Material: MaterialDefault, Width: MinLineWidth}
	}

	expanding := m.action == Expand
	if expanding && !m.data.CanExpand {
		return Appearance{Material: MaterialDefault, Width: MinLineWidth}
	}

	material := MaterialRed
	if expanding {
		material = MaterialBlue
	}
	return Appearance{
		Material: material,
		Width:    common.Lerp(MinLineWidth, MaxLineWidth, m.Alpha()),
	}
}

// Render is the render-step update. It returns the current line between the
// anchor centers.
func (m *Muscle) Render(prefs settings.Preferences) Line {
	line := Line{ID: m.data.ID, Appearance: m.Visual(prefs)}
	if m.start == nil || m.end == nil || m.state == destroyed {
		line.Appearance = invisible
		return line
	}
	line.Start = m.start.Center()
	line.End = m.end.Center()
	return line
}

// Box is an oriented rectangle in the simulation plane.
type Box struct {
	Center r3.Vec
	Length float64
	Width  float64
	// Angle is the rotation about Z in radians.
	Angle float64
}

// PickBox returns the selection box covering the muscle line.
func (m *Muscle) PickBox() Box {
	if m.start == nil || m.end == nil {
		return Box{Width: LineWidth}
	}
	p0, p1 := m.start.Center(), m.end.Center()
	return Box{
		Center: r3.Scale(0.5, r3.Add(p0, p1)),
		Length: math.Hypot(p1.X-p0.X, p1.Y-p0.Y),
		Width:  LineWidth,
		Angle:  math.Atan2(p1.Y-p0.Y, p1.X-p0.X),
	}
}
