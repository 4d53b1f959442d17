package render

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/musclesim/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestCameraFlipsY(t *testing.T) {
	cam := NewCamera(800, 600, 10)

	tests := []struct {
		name   string
		x, y   float64
		sx, sy float32
	}{
		{"origin_at_center", 0, 0, 400, 300},
		{"up_is_screen_up", 0, 1, 400, 290},
		{"right_is_screen_right", 2, 0, 420, 300},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := cam.ToScreen(tc.x, tc.y)
			require.Equal(t, tc.sx, sx)
			require.Equal(t, tc.sy, sy)
			require.Equal(t, cp.Vector{X: tc.x, Y: tc.y}, cam.ToWorld(float64(sx), float64(sy)))
		})
	}
}

func TestCameraFollowsPosition(t *testing.T) {
	cam := Camera{X: 5, Y: -5, Width: 100, Height: 100}
	sx, sy := cam.ToScreen(5, -5)
	require.Equal(t, float32(50), sx)
	require.Equal(t, float32(50), sy)
	require.Equal(t, float32(1.5), cam.Scale(1.5))
}

func TestToNRGBA(t *testing.T) {
	require.Equal(t, color.NRGBA{R: 255, G: 0, B: 127, A: 255}, toNRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1}))
}

func TestDrawLineSkipsNothingToDraw(t *testing.T) {
	// nil screen and invisible lines return before touching ebiten
	DrawLine(nil, component.LineRender{Width: 1, Color: color.White}, Camera{})
	DrawSpace(nil, cp.NewSpace(), Camera{})
}
