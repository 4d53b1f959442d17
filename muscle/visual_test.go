package muscle

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/musclesim/settings"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var showAll = settings.Preferences{ShowMuscles: true, ShowMuscleContraction: true}

func TestVisual(t *testing.T) {
	cases := []struct {
		name      string
		canExpand bool
		living    bool
		showContr bool
		prefs     settings.Preferences
		action    Action
		intensity float64
		wantMat   Material
		wantWidth float64
	}{
		{"not_living", true, false, true, showAll, Contract, 1, MaterialInvisible, MinLineWidth},
		{"muscles_hidden", true, true, true, settings.Preferences{ShowMuscles: false, ShowMuscleContraction: true}, Contract, 1, MaterialInvisible, MinLineWidth},
		{"contraction_suppressed", true, true, false, showAll, Contract, 1, MaterialDefault, MinLineWidth},
		{"contract_full", true, true, true, showAll, Contract, 1, MaterialRed, MaxLineWidth},
		{"contract_half", true, true, true, showAll, Contract, 0.5, MaterialRed, 1.0},
		{"expand_full", true, true, true, showAll, Expand, 1, MaterialBlue, MaxLineWidth},
		{"expand_rigid", false, true, true, showAll, Expand, 1, MaterialDefault, MinLineWidth},
		{"contract_rigid", false, true, true, showAll, Contract, 0.5, MaterialRed, 1.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := New(mustBoneData(t, 1, 0, 1, 100, c.canExpand, "u"), nil)
			m.SetLiving(c.living)
			m.SetShowContraction(c.showContr)
			m.SetAction(c.action)
			m.SetIntensity(c.intensity)

			got := m.Visual(c.prefs)
			require.Equal(t, c.wantMat, got.Material)
			require.InDelta(t, c.wantWidth, got.Width, eps)
		})
	}
}

func TestAlphaMonotonic(t *testing.T) {
	m := New(mustBoneData(t, 1, 0, 1, 80, true, "u"), nil)
	m.SetLiving(true)

	prev := -1.0
	prevWidth := 0.0
	for f := 0.0; f <= 1.2; f += 0.05 {
		m.SetIntensity(f)
		alpha := m.Alpha()
		require.GreaterOrEqual(t, alpha, prev)
		require.GreaterOrEqual(t, alpha, 0.0)
		require.LessOrEqual(t, alpha, 1.0)
		width := m.Visual(showAll).Width
		require.GreaterOrEqual(t, width, prevWidth)
		prev, prevWidth = alpha, width
	}
}

func TestAlphaZeroStrength(t *testing.T) {
	m := New(mustBoneData(t, 1, 0, 1, 0, true, "u"), nil)
	m.SetIntensity(1)
	alpha := m.Alpha()
	require.False(t, math.IsNaN(alpha))
	require.Equal(t, 1.0, alpha)
}

func TestRenderFollowsAnchors(t *testing.T) {
	m, _, start, _ := attachedBoneMuscle(t, mustBoneData(t, 4, 0, 1, 10, true, "u"), r3.Vec{X: 1}, r3.Vec{X: 5})
	m.SetLiving(true)
	m.SetIntensity(1)

	line := m.Render(showAll)
	require.Equal(t, 4, line.ID)
	require.Equal(t, r3.Vec{X: 1}, line.Start)
	require.Equal(t, r3.Vec{X: 5}, line.End)
	require.True(t, line.Appearance.Visible())

	start.center = r3.Vec{X: 2, Y: 1}
	require.Equal(t, r3.Vec{X: 2, Y: 1}, m.Render(showAll).Start)

	m.Destroy()
	require.False(t, m.Render(showAll).Appearance.Visible())
}

func TestRenderUnbound(t *testing.T) {
	m := New(mustBoneData(t, 1, 0, 1, 10, true, "u"), nil)
	m.SetLiving(true)
	require.False(t, m.Render(showAll).Appearance.Visible())
}

func TestMaterialColors(t *testing.T) {
	require.Equal(t, color.Transparent, MaterialInvisible.Color())
	require.NotEqual(t, MaterialRed.Color(), MaterialBlue.Color())
}

func TestPickBox(t *testing.T) {
	m, _, _, _ := attachedBoneMuscle(t, mustBoneData(t, 1, 0, 1, 10, true, "u"), r3.Vec{}, r3.Vec{X: 3, Y: 4})
	box := m.PickBox()
	require.Equal(t, r3.Vec{X: 1.5, Y: 2}, box.Center)
	require.InDelta(t, 5, box.Length, eps)
	require.Equal(t, LineWidth, box.Width)
	require.InDelta(t, math.Atan2(4, 3), box.Angle, eps)
}
