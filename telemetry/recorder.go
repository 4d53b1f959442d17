// Package telemetry writes per-muscle force samples as CSV.
package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/settings"
)

// Sample is one muscle's state after a fixed step.
type Sample struct {
	Tick     int     `csv:"tick"`
	Time     float64 `csv:"time"`
	MuscleID int     `csv:"muscle_id"`
	Action   string  `csv:"action"`
	Force    float64 `csv:"force"`
	Alpha    float64 `csv:"alpha"`
	Living   bool    `csv:"living"`
	Error    string  `csv:"error"`
}

// NewSample captures m at the given tick. stepErr is the error its last step
// returned, if any.
func NewSample(tick int, time float64, m *muscle.Muscle, stepErr error) Sample {
	s := Sample{
		Tick:     tick,
		Time:     time,
		MuscleID: m.ID(),
		Action:   m.Action().String(),
		Force:    m.Force(),
		Alpha:    m.Alpha(),
		Living:   m.Living(),
	}
	if stepErr != nil {
		s.Error = stepErr.Error()
	}
	return s
}

// Recorder appends samples to a CSV stream. A nil Recorder discards
// everything.
type Recorder struct {
	dir           string
	out           io.Writer
	file          *os.File
	headerWritten bool
	rows          int
}

// NewRecorder creates dir and opens dir/telemetry.csv. It returns nil when dir
// is empty.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("telemetry: create dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create telemetry.csv: %w", err)
	}
	return &Recorder{dir: dir, out: f, file: f}, nil
}

// NewWriterRecorder records to out. The caller owns out.
func NewWriterRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// WriteConfig saves cfg next to the samples so a run can be reproduced.
func (r *Recorder) WriteConfig(cfg settings.Config) error {
	if r == nil || r.dir == "" {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// Write appends samples. The first non-empty write emits the header row.
func (r *Recorder) Write(samples []Sample) error {
	if r == nil || len(samples) == 0 {
		return nil
	}
	if r.out == nil {
		return errors.New("telemetry: recorder closed")
	}
	if !r.headerWritten {
		if err := gocsv.Marshal(samples, r.out); err != nil {
			return fmt.Errorf("telemetry: write samples: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(samples, r.out); err != nil {
			return fmt.Errorf("telemetry: write samples: %w", err)
		}
	}
	r.rows += len(samples)
	return nil
}

// Rows returns the number of samples written so far.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

// Close closes the file opened by NewRecorder.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.out = nil
	return err
}

// ReadSamples parses a CSV stream written by a Recorder.
func ReadSamples(in io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(in, &samples); err != nil {
		return nil, fmt.Errorf("telemetry: read samples: %w", err)
	}
	return samples, nil
}
