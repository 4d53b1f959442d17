package component

import (
	"image/color"

	"github.com/milk9111/musclesim/muscle"
)

// LineRender defines a world-space line to render.
type LineRender struct {
	MuscleID  int
	StartX    float64
	StartY    float64
	EndX      float64
	EndY      float64
	Width     float32
	Color     color.Color
	Material  muscle.Material
	AntiAlias bool
}

// Visible reports whether the line should be drawn at all.
func (l LineRender) Visible() bool {
	return l.Material != muscle.MaterialInvisible && l.Width > 0
}

// FromLine converts a muscle render line into its drawable form.
func FromLine(line muscle.Line) LineRender {
	return LineRender{
		MuscleID:  line.ID,
		StartX:    line.Start.X,
		StartY:    line.Start.Y,
		EndX:      line.End.X,
		EndY:      line.End.Y,
		Width:     float32(line.Appearance.Width),
		Color:     line.Appearance.Material.Color(),
		Material:  line.Appearance.Material,
		AntiAlias: true,
	}
}

var LineRenderComponent = NewComponent[LineRender]()
