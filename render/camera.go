// Package render draws the simulation with ebiten.
package render

import "github.com/jakecoffman/cp"

// Camera maps simulation coordinates, Y up, onto a screen whose Y grows
// downwards. The camera position is shown at the screen center.
type Camera struct {
	X, Y   float64
	Zoom   float64
	Width  float64
	Height float64
}

// NewCamera centers a width x height screen on the origin.
func NewCamera(width, height, zoom float64) Camera {
	return Camera{Zoom: zoom, Width: width, Height: height}
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ToScreen converts a simulation point to screen pixels.
func (c Camera) ToScreen(x, y float64) (float32, float32) {
	z := c.zoom()
	sx := (x-c.X)*z + c.Width/2
	sy := c.Height/2 - (y-c.Y)*z
	return float32(sx), float32(sy)
}

// ToWorld converts screen pixels back to a simulation point.
func (c Camera) ToWorld(sx, sy float64) cp.Vector {
	z := c.zoom()
	return cp.Vector{
		X: (sx-c.Width/2)/z + c.X,
		Y: (c.Height/2-sy)/z + c.Y,
	}
}

// Scale converts a simulation length to pixels.
func (c Camera) Scale(length float64) float32 {
	return float32(length * c.zoom())
}
