package body

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// Joint is the point where bones meet.
type Joint struct {
	connections

	id   int
	body *cp.Body
}

var _ muscle.Anchor = (*Joint)(nil)

func NewJoint(id int, body *cp.Body) *Joint {
	return &Joint{id: id, body: body}
}

// SpawnJoint creates the body for a joint at pos in w.
func SpawnJoint(w *physics.World, id int, pos r3.Vec) *Joint {
	return NewJoint(id, w.NewBody(0, 0, pos))
}

func (j *Joint) ID() int { return j.id }

func (j *Joint) Key() muscle.AnchorKey {
	return muscle.AnchorKey{Kind: muscle.KindJoint, ID: j.id}
}

func (j *Joint) Center() r3.Vec           { return center(j.body) }
func (j *Joint) Body() *cp.Body           { return j.body }
func (j *Joint) ConstraintBody() *cp.Body { return j.body }

// Delete destroys the connected muscles and removes the joint from w.
func (j *Joint) Delete(w *physics.World) {
	j.release()
	if w != nil {
		w.RemoveBody(j.body)
	}
}
