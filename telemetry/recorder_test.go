package telemetry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/settings"
	"github.com/stretchr/testify/require"
)

func TestRecorderWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterRecorder(&buf)

	require.NoError(t, r.Write([]Sample{{Tick: 1, MuscleID: 3, Action: "contract", Force: 750, Alpha: 0.5, Living: true}}))
	require.NoError(t, r.Write(nil))
	require.NoError(t, r.Write([]Sample{{Tick: 2, MuscleID: 3, Action: "expand", Force: 10, Error: "boom"}}))
	require.Equal(t, 2, r.Rows())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "tick,time,muscle_id,action,force,alpha,living,error", lines[0])

	samples, err := ReadSamples(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, []Sample{
		{Tick: 1, MuscleID: 3, Action: "contract", Force: 750, Alpha: 0.5, Living: true},
		{Tick: 2, MuscleID: 3, Action: "expand", Force: 10, Error: "boom"},
	}, samples)
}

func TestNilRecorder(t *testing.T) {
	r, err := NewRecorder("")
	require.NoError(t, err)
	require.Nil(t, r)

	require.NoError(t, r.Write([]Sample{{Tick: 1}}))
	require.NoError(t, r.WriteConfig(settings.Defaults()))
	require.NoError(t, r.Close())
	require.Equal(t, 0, r.Rows())
}

func TestRecorderDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir)
	require.NoError(t, err)

	cfg := settings.Defaults()
	cfg.Physics.Gravity = -9.8
	require.NoError(t, r.WriteConfig(cfg))
	require.NoError(t, r.Write([]Sample{{Tick: 5, MuscleID: 1, Action: "contract"}}))
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	require.Error(t, r.Write([]Sample{{Tick: 6}}))

	saved, err := settings.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, -9.8, saved.Physics.Gravity)

	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	defer f.Close()
	samples, err := ReadSamples(f)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	require.Equal(t, 5, samples[0].Tick)
}

func TestNewSample(t *testing.T) {
	data, err := muscle.NewBoneData(4, 1, 2, 1000, true, "")
	require.NoError(t, err)
	m := muscle.New(data, nil)
	m.SetLiving(true)
	m.SetAction(muscle.Expand)
	m.SetIntensity(0.25)

	s := NewSample(9, 0.15, m, errors.New("degenerate"))
	require.Equal(t, Sample{
		Tick:     9,
		Time:     0.15,
		MuscleID: 4,
		Action:   "expand",
		Force:    250,
		Alpha:    0.25,
		Living:   true,
		Error:    "degenerate",
	}, s)
}
