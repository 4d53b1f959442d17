package muscle

import (
	"errors"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r3"
)

type fakeAnchor struct {
	key       AnchorKey
	center    r3.Vec
	body      *cp.Body
	weight    *cp.Body
	connected []*Muscle
}

func newFakeAnchor(kind AnchorKind, id int, center r3.Vec) *fakeAnchor {
	return &fakeAnchor{
		key:    AnchorKey{Kind: kind, ID: id},
		center: center,
		body:   cp.NewBody(1, 1),
	}
}

func (a *fakeAnchor) Key() AnchorKey { return a.key }
func (a *fakeAnchor) Center() r3.Vec { return a.center }
func (a *fakeAnchor) Body() *cp.Body { return a.body }

func (a *fakeAnchor) ConstraintBody() *cp.Body {
	if a.weight != nil {
		return a.weight
	}
	return a.body
}

func (a *fakeAnchor) Connect(m *Muscle) {
	a.connected = append(a.connected, m)
}

func (a *fakeAnchor) Disconnect(m *Muscle) {
	for i, c := range a.connected {
		if c == m {
			a.connected = append(a.connected[:i], a.connected[i+1:]...)
			return
		}
	}
}

type appliedForce struct {
	body  *cp.Body
	force r3.Vec
	point r3.Vec
}

type createdSpring struct {
	a, b             *cp.Body
	anchorA, anchorB r3.Vec
	cfg              SpringConfig
	constraint       *cp.Constraint
}

type fakePhysics struct {
	forces    []appliedForce
	springs   []createdSpring
	destroyed []*cp.Constraint
	failNext  bool
}

var errSpringFailed = errors.New("spring failed")

func (p *fakePhysics) CreatePinConstraint(a *cp.Body, anchorA r3.Vec, b *cp.Body, anchorB r3.Vec, cfg SpringConfig) (*cp.Constraint, error) {
	if p.failNext {
		p.failNext = false
		return nil, errSpringFailed
	}
	c := cp.NewDampedSpring(a, b, cp.Vector{}, cp.Vector{}, cfg.RestLength, cfg.Stiffness, cfg.Damping)
	p.springs = append(p.springs, createdSpring{a: a, b: b, anchorA: anchorA, anchorB: anchorB, cfg: cfg, constraint: c})
	return c, nil
}

func (p *fakePhysics) AddForceAtPoint(body *cp.Body, force, point r3.Vec) {
	p.forces = append(p.forces, appliedForce{body: body, force: force, point: point})
}

func (p *fakePhysics) DestroyConstraint(c *cp.Constraint) {
	p.destroyed = append(p.destroyed, c)
}
