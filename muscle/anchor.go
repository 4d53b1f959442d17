package muscle

import (
	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r3"
)

// AnchorKind distinguishes the two kinds of body part a muscle can span.
type AnchorKind int

const (
	KindBone AnchorKind = iota
	KindJoint
)

func (k AnchorKind) String() string {
	if k == KindJoint {
		return "joint"
	}
	return "bone"
}

// AnchorKey identifies a body part within a creature.
type AnchorKey struct {
	Kind AnchorKind
	ID   int
}

// Anchor is a body part a muscle pulls on. Muscles never own their anchors.
type Anchor interface {
	Key() AnchorKey
	// Center is the world-space point forces are applied at.
	Center() r3.Vec
	// Body is the rigid body that receives muscle forces.
	Body() *cp.Body
	// ConstraintBody is the rigid body the muscle spring is attached to.
	// Legacy bones route this through their weight body.
	ConstraintBody() *cp.Body
	Connect(m *Muscle)
	Disconnect(m *Muscle)
}

// SpringConfig describes the spring created between two anchors.
type SpringConfig struct {
	Stiffness     float64
	Damping       float64
	RestLength    float64
	CollideBodies bool
	Preprocess    bool
}

// Physics is the subset of the physics engine a muscle needs.
type Physics interface {
	CreatePinConstraint(a *cp.Body, anchorA r3.Vec, b *cp.Body, anchorB r3.Vec, cfg SpringConfig) (*cp.Constraint, error)
	AddForceAtPoint(body *cp.Body, force, point r3.Vec)
	DestroyConstraint(c *cp.Constraint)
}
