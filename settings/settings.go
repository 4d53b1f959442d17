// Package settings loads the simulation configuration and the user's display
// preferences.
package settings

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Preferences are the user-facing display toggles. The simulation only reads
// them.
type Preferences struct {
	ShowMuscles           bool `yaml:"show_muscles"`
	ShowMuscleContraction bool `yaml:"show_muscle_contraction"`
}

// PhysicsConfig holds the Chipmunk space parameters.
type PhysicsConfig struct {
	Dt         float64 `yaml:"dt"`
	Iterations int     `yaml:"iterations"`
	Gravity    float64 `yaml:"gravity"`
	BodyMass   float64 `yaml:"body_mass"`
	BodyRadius float64 `yaml:"body_radius"`
}

// SimulationConfig holds host loop parameters.
type SimulationConfig struct {
	MaxFixedSteps  int `yaml:"max_fixed_steps"` // fixed steps allowed per rendered frame
	TelemetryEvery int `yaml:"telemetry_every"` // record a sample every N fixed steps
}

// Config is the full settings file.
type Config struct {
	Display    Preferences      `yaml:"display"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// Defaults returns the embedded default configuration.
func Defaults() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic("settings: embedded defaults: " + err.Error())
	}
	return cfg
}

// Load reads path over the embedded defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("settings: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("settings: unmarshal %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Physics.Dt <= 0 {
		c.Physics.Dt = 1.0 / 60.0
	}
	if c.Physics.Iterations <= 0 {
		c.Physics.Iterations = 10
	}
	if c.Physics.BodyMass <= 0 {
		c.Physics.BodyMass = 1
	}
	if c.Physics.BodyRadius <= 0 {
		c.Physics.BodyRadius = 0.5
	}
	if c.Simulation.MaxFixedSteps <= 0 {
		c.Simulation.MaxFixedSteps = 1
	}
}

// WriteYAML saves the configuration to path.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}

// Store holds the live configuration for the simulation thread.
type Store struct {
	path string
	cfg  Config
}

// NewStore loads path and returns a store for it.
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Path returns the file backing the store, or "" for defaults only.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Config returns the current configuration.
func (s *Store) Config() Config {
	if s == nil {
		return Defaults()
	}
	return s.cfg
}

// Preferences returns the current display preferences.
func (s *Store) Preferences() Preferences {
	return s.Config().Display
}

// SetPreferences replaces the display preferences.
func (s *Store) SetPreferences(p Preferences) {
	if s == nil {
		return
	}
	s.cfg.Display = p
}

// Reload re-reads the backing file. On error the previous configuration is
// kept.
func (s *Store) Reload() error {
	if s == nil || s.path == "" {
		return nil
	}
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}
