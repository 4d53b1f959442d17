package body

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bone is a rigid segment of a creature.
type Bone struct {
	connections

	id   int
	body *cp.Body
	// weight is the separate mass body older creature files used; springs
	// attach to it instead of the bone body.
	weight *cp.Body
}

var _ muscle.Anchor = (*Bone)(nil)

// NewBone wraps an existing Chipmunk body.
func NewBone(id int, body *cp.Body) *Bone {
	return &Bone{id: id, body: body}
}

// NewLegacyBone wraps a bone whose springs attach to a separate weight body.
func NewLegacyBone(id int, body, weight *cp.Body) *Bone {
	return &Bone{id: id, body: body, weight: weight}
}

// SpawnBone creates the body for a bone centred at pos in w.
func SpawnBone(w *physics.World, id int, pos r3.Vec) *Bone {
	return NewBone(id, w.NewBody(0, 0, pos))
}

// SpawnLegacyBone creates a bone whose springs attach to a weight body pinned
// to its center.
func SpawnLegacyBone(w *physics.World, id int, pos r3.Vec) (*Bone, error) {
	bone := w.NewBody(0, 0, pos)
	weight, err := w.NewWeight(bone, 0)
	if err != nil {
		w.RemoveBody(bone)
		return nil, fmt.Errorf("body: spawn legacy bone %d: %w", id, err)
	}
	return NewLegacyBone(id, bone, weight), nil
}

func (b *Bone) ID() int               { return b.id }
func (b *Bone) Key() muscle.AnchorKey { return muscle.AnchorKey{Kind: muscle.KindBone, ID: b.id} }
func (b *Bone) Center() r3.Vec        { return center(b.body) }
func (b *Bone) Body() *cp.Body        { return b.body }
func (b *Bone) Legacy() bool          { return b.weight != nil }

// ConstraintBody returns the weight body for legacy bones and the bone body
// otherwise.
func (b *Bone) ConstraintBody() *cp.Body {
	if b.weight != nil {
		return b.weight
	}
	return b.body
}

// Delete destroys the connected muscles and removes the bone from w.
func (b *Bone) Delete(w *physics.World) {
	b.release()
	if w == nil {
		return
	}
	w.RemoveBody(b.body)
	if b.weight != nil {
		w.RemoveBody(b.weight)
	}
}
