package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawSpace draws the shapes and constraints of space as outlines.
func DrawSpace(screen *ebiten.Image, space *cp.Space, cam Camera) {
	if screen == nil || space == nil {
		return
	}
	cp.DrawSpace(space, &debugDrawer{screen: screen, cam: cam})
}

type debugDrawer struct {
	screen *ebiten.Image
	cam    Camera
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawPolygon(circlePoints(pos, radius), outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawPolygon(circlePoints(a, radius), outline)
		d.drawPolygon(circlePoints(b, radius), outline)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.cam.ToScreen(pos.X, pos.Y)
	half := float32(size / 2)
	vector.StrokeLine(d.screen, x-half, y, x+half, y, 1, toNRGBA(fill), false)
	vector.StrokeLine(d.screen, x, y-half, x, y+half, 1, toNRGBA(fill), false)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func (d *debugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.cam.ToScreen(a.X, a.Y)
	x2, y2 := d.cam.ToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *debugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func circlePoints(center cp.Vector, radius float64) []cp.Vector {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	return points
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
