// Package physics adapts a Chipmunk2D space to the engine operations muscles
// need.
package physics

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/settings"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSelector
)

// selectorCategory is a collision category no body collides with; only
// selection queries see it.
const selectorCategory uint = 1 << 31

var (
	bodyFilter     = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: ^selectorCategory, Mask: ^selectorCategory}
	selectorFilter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: selectorCategory, Mask: selectorCategory}
)

var ErrNilBody = errors.New("physics: body is nil")

// World owns the Chipmunk space the creature bodies live in.
type World struct {
	space       *cp.Space
	cfg         settings.PhysicsConfig
	bodies      map[*cp.Body]struct{}
	constraints map[*cp.Constraint]struct{}
	// pins hold weights to their bones and go away with either body.
	pins      map[*cp.Constraint][2]*cp.Body
	selectors map[int]*cp.Shape
}

var _ muscle.Physics = (*World)(nil)

// NewWorld creates an empty space configured from cfg.
func NewWorld(cfg settings.PhysicsConfig) *World {
	w := &World{
		space:       cp.NewSpace(),
		bodies:      make(map[*cp.Body]struct{}),
		constraints: make(map[*cp.Constraint]struct{}),
		pins:        make(map[*cp.Constraint][2]*cp.Body),
		selectors:   make(map[int]*cp.Shape),
	}
	w.Configure(cfg)
	return w
}

// Configure applies the parts of cfg that can change while running.
func (w *World) Configure(cfg settings.PhysicsConfig) {
	w.space.Iterations = uint(max(cfg.Iterations, 1))
	w.space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	w.cfg = cfg
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Config returns the current configuration.
func (w *World) Config() settings.PhysicsConfig {
	return w.cfg
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// NewBody adds a dynamic circular body centred at pos.
func (w *World) NewBody(mass, radius float64, pos r3.Vec) *cp.Body {
	if mass <= 0 {
		mass = w.cfg.BodyMass
	}
	if radius <= 0 {
		radius = w.cfg.BodyRadius
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(ToVector(pos))
	w.space.AddBody(body)
	w.bodies[body] = struct{}{}

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(bodyFilter)
	w.space.AddShape(shape)
	return body
}

// AddGround adds a static floor at height y spanning halfWidth either side of
// the origin.
func (w *World) AddGround(y, halfWidth float64) *cp.Shape {
	ground := cp.NewSegment(w.space.StaticBody, cp.Vector{X: -halfWidth, Y: y}, cp.Vector{X: halfWidth, Y: y}, 0)
	ground.SetFriction(1)
	ground.SetCollisionType(collisionTypeBody)
	ground.SetFilter(bodyFilter)
	w.space.AddShape(ground)
	return ground
}

// RemoveBody takes body and all of its shapes out of the space. Bodies the
// world did not create are ignored.
func (w *World) RemoveBody(body *cp.Body) {
	if w == nil || body == nil {
		return
	}
	if _, ok := w.bodies[body]; !ok {
		return
	}
	for c, pair := range w.pins {
		if pair[0] == body || pair[1] == body {
			w.space.RemoveConstraint(c)
			delete(w.pins, c)
		}
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(body)
	delete(w.bodies, body)
}

// Bodies returns the number of bodies created through the world that are
// still in the space.
func (w *World) Bodies() int {
	return len(w.bodies)
}

// NewWeight adds a shapeless body pinned to the center of bone. Older
// creature files carried a bone's mass on such a body.
func (w *World) NewWeight(bone *cp.Body, mass float64) (*cp.Body, error) {
	if bone == nil {
		return nil, ErrNilBody
	}
	if mass <= 0 {
		mass = w.cfg.BodyMass
	}
	weight := cp.NewBody(mass, cp.MomentForCircle(mass, 0, w.cfg.BodyRadius, cp.Vector{}))
	weight.SetPosition(bone.Position())
	w.space.AddBody(weight)
	w.bodies[weight] = struct{}{}

	pin := cp.NewPivotJoint(bone, weight, bone.Position())
	pin.SetCollideBodies(false)
	w.space.AddConstraint(pin)
	w.pins[pin] = [2]*cp.Body{bone, weight}
	return weight, nil
}

// CreatePinConstraint joins a and b with a zero-length damped spring between
// the world points anchorA and anchorB.
func (w *World) CreatePinConstraint(a *cp.Body, anchorA r3.Vec, b *cp.Body, anchorB r3.Vec, cfg muscle.SpringConfig) (*cp.Constraint, error) {
	if a == nil || b == nil {
		return nil, ErrNilBody
	}
	localA := a.WorldToLocal(ToVector(anchorA))
	localB := b.WorldToLocal(ToVector(anchorB))

	spring := cp.NewDampedSpring(a, b, localA, localB, cfg.RestLength, cfg.Stiffness, cfg.Damping)
	spring.SetCollideBodies(cfg.CollideBodies)
	w.space.AddConstraint(spring)
	w.constraints[spring] = struct{}{}
	return spring, nil
}

// AddForceAtPoint applies force at the world point on body until the next
// step.
func (w *World) AddForceAtPoint(body *cp.Body, force, point r3.Vec) {
	if body == nil {
		return
	}
	body.ApplyForceAtWorldPoint(ToVector(force), ToVector(point))
}

// DestroyConstraint removes c from the space. Unknown constraints are
// ignored.
func (w *World) DestroyConstraint(c *cp.Constraint) {
	if w == nil || c == nil {
		return
	}
	if _, ok := w.constraints[c]; !ok {
		return
	}
	w.space.RemoveConstraint(c)
	delete(w.constraints, c)
}

// Constraints returns the number of constraints created through the world
// that are still alive.
func (w *World) Constraints() int {
	return len(w.constraints)
}

// AddSelector places a collision-free box used for picking the muscle id.
// An existing selector for id is replaced.
func (w *World) AddSelector(id int, box muscle.Box) {
	w.RemoveSelector(id)

	length := math.Max(box.Length, box.Width)
	hl, hw := length/2, box.Width/2
	sin, cos := math.Sincos(box.Angle)
	center := ToVector(box.Center)
	corner := func(x, y float64) cp.Vector {
		return cp.Vector{X: center.X + x*cos - y*sin, Y: center.Y + x*sin + y*cos}
	}
	verts := []cp.Vector{corner(-hl, -hw), corner(hl, -hw), corner(hl, hw), corner(-hl, hw)}

	shape := cp.NewPolyShapeRaw(w.space.StaticBody, len(verts), verts, 0)
	shape.SetCollisionType(collisionTypeSelector)
	shape.SetFilter(selectorFilter)
	shape.UserData = id
	w.space.AddShape(shape)
	w.selectors[id] = shape
}

// RemoveSelector drops the selector for id if there is one.
func (w *World) RemoveSelector(id int) {
	shape, ok := w.selectors[id]
	if !ok {
		return
	}
	w.space.RemoveShape(shape)
	delete(w.selectors, id)
}

// Pick returns the id of the selector under point.
func (w *World) Pick(point r3.Vec) (int, bool) {
	info := w.space.PointQueryNearest(ToVector(point), 0, selectorFilter)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	id, ok := info.Shape.UserData.(int)
	return id, ok
}

// ToVector projects p onto the simulation plane.
func ToVector(p r3.Vec) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

// FromVector lifts v into the simulation plane at Z = 0.
func FromVector(v cp.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y}
}
