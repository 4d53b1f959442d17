package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/musclesim/ecs/component"
)

// minStrokePixels keeps thin lines visible when zoomed out.
const minStrokePixels = 1

// DrawLine strokes one line. Invisible lines are skipped.
func DrawLine(screen *ebiten.Image, line component.LineRender, cam Camera) {
	if screen == nil || !line.Visible() || line.Color == nil {
		return
	}
	x0, y0 := cam.ToScreen(line.StartX, line.StartY)
	x1, y1 := cam.ToScreen(line.EndX, line.EndY)
	width := max(cam.Scale(float64(line.Width)), minStrokePixels)
	vector.StrokeLine(screen, x0, y0, x1, y1, width, line.Color, line.AntiAlias)
}
