package sim

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/musclesim/muscle"
	"gonum.org/v1/gonum/spatial/r3"
)

//go:embed creatures/*.json
var creaturesFS embed.FS

// PartSpec places one bone or joint.
type PartSpec struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Legacy bool    `json:"legacy,omitempty"`
}

func (p PartSpec) Position() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y}
}

// Creature is a saved creature: its body parts and the muscles between them.
type Creature struct {
	// Ground is the height of an optional static floor.
	Ground  *float64      `json:"ground,omitempty"`
	Bones   []PartSpec    `json:"bones"`
	Joints  []PartSpec    `json:"joints"`
	Muscles []muscle.Data `json:"muscles"`
}

// LoadCreature reads a creature file from disk, falling back to the embedded
// creatures by base name. An empty name loads the demo creature.
func LoadCreature(name string) (Creature, error) {
	if name == "" {
		name = "demo"
	}
	data, err := os.ReadFile(name)
	if err != nil {
		clean := strings.TrimSuffix(filepath.Base(name), ".json") + ".json"
		embedded, embErr := creaturesFS.ReadFile("creatures/" + clean)
		if embErr != nil {
			return Creature{}, fmt.Errorf("sim: load creature %s: %w", name, err)
		}
		data = embedded
	}
	return ParseCreature(data)
}

// ParseCreature decodes a creature document.
func ParseCreature(data []byte) (Creature, error) {
	var c Creature
	if err := json.Unmarshal(data, &c); err != nil {
		return Creature{}, fmt.Errorf("sim: decode creature: %w", err)
	}
	return c, nil
}

// Marshal encodes the creature in the same form ParseCreature reads.
func (c Creature) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
