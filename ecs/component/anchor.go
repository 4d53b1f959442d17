package component

import (
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/physics"
)

// AnchorPart is a bone or joint living in the physics world.
type AnchorPart interface {
	muscle.Anchor
	Muscles() []*muscle.Muscle
	Delete(w *physics.World)
}

// Anchor marks an entity as a body part muscles can attach to.
type Anchor struct {
	Part AnchorPart
}

var AnchorComponent = NewComponent[Anchor]()
