// Package muscle models the contracting and expanding actuators that connect
// two body parts of a creature.
package muscle

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/musclesim/settings"
)

// Action is the direction a muscle pushes its anchors.
type Action int

const (
	Contract Action = iota
	Expand
)

func (a Action) String() string {
	if a == Expand {
		return "expand"
	}
	return "contract"
}

const (
	SpringStiffness = 1000.0
	SpringDamping   = 50.0
)

// MinForce keeps the commanded force away from zero.
const MinForce = 0.01

// Spring is the constraint configuration used by Attach.
var Spring = SpringConfig{
	Stiffness:     SpringStiffness,
	Damping:       SpringDamping,
	RestLength:    0,
	CollideBodies: false,
	Preprocess:    true,
}

type lifecycle int

const (
	unbound lifecycle = iota
	bound
	attached
	destroyed
)

func (l lifecycle) String() string {
	switch l {
	case bound:
		return "bound"
	case attached:
		return "attached"
	case destroyed:
		return "destroyed"
	default:
		return "unbound"
	}
}

// Muscle is the runtime actuator for one Data record.
type Muscle struct {
	data    Data
	physics Physics

	start  Anchor
	end    Anchor
	spring *cp.Constraint
	state  lifecycle

	action          Action
	living          bool
	showContraction bool
	force           float64
}

// New returns an unbound muscle for data.
func New(data Data, physics Physics) *Muscle {
	return &Muscle{
		data:            data,
		physics:         physics,
		showContraction: true,
	}
}

func (m *Muscle) Data() Data             { return m.data }
func (m *Muscle) ID() int                { return m.data.ID }
func (m *Muscle) Start() Anchor          { return m.start }
func (m *Muscle) End() Anchor            { return m.end }
func (m *Muscle) Spring() *cp.Constraint { return m.spring }
func (m *Muscle) Action() Action         { return m.action }
func (m *Muscle) Living() bool           { return m.living }
func (m *Muscle) Force() float64         { return m.force }
func (m *Muscle) Attached() bool         { return m.state == attached }
func (m *Muscle) Destroyed() bool        { return m.state == destroyed }

func (m *Muscle) String() string {
	return fmt.Sprintf("muscle(%d %s %s)", m.data.ID, m.data.Mode, m.state)
}

// Bind stores the anchors the muscle spans. It must be called before Attach
// and leaves the muscle unchanged on error.
func (m *Muscle) Bind(start, end Anchor) error {
	switch {
	case m.state == destroyed:
		return ErrDestroyed
	case m.state == attached:
		return ErrAlreadyAttached
	case start == nil || end == nil:
		return ErrNilAnchor
	case start == end || start.Key() == end.Key():
		return ErrSameAnchor
	}
	m.start = start
	m.end = end
	m.state = bound
	return nil
}

// Attach registers the muscle with both anchors and creates the spring
// between them. The spring pins the anchor centers together with no slack
// and does not let the two bodies collide with each other.
func (m *Muscle) Attach() error {
	switch m.state {
	case unbound:
		return ErrNotBound
	case attached:
		return ErrAlreadyAttached
	case destroyed:
		return ErrDestroyed
	}
	if m.physics == nil {
		return ErrNilPhysics
	}

	want := KindBone
	if m.data.Mode == AttachJoints {
		want = KindJoint
	}
	if m.start.Key().Kind != want || m.end.Key().Kind != want {
		return fmt.Errorf("%w: %s muscle between %s and %s", ErrAnchorKind, m.data.Mode, m.start.Key().Kind, m.end.Key().Kind)
	}

	m.start.Connect(m)
	m.end.Connect(m)

	spring, err := m.physics.CreatePinConstraint(
		m.start.ConstraintBody(), m.start.Center(),
		m.end.ConstraintBody(), m.end.Center(),
		Spring,
	)
	if err != nil {
		m.start.Disconnect(m)
		m.end.Disconnect(m)
		return fmt.Errorf("muscle: create spring: %w", err)
	}
	m.spring = spring
	m.state = attached
	return nil
}

// SetIntensity sets the commanded force to fraction of the muscle strength,
// clamped to [MinForce, Strength].
func (m *Muscle) SetIntensity(fraction float64) {
	strength := m.data.Strength
	m.force = max(MinForce, min(strength, fraction*strength))
}

// SetAction changes the direction used by the next Step.
func (m *Muscle) SetAction(a Action) {
	m.action = a
}

// SetLiving toggles whether Step produces forces.
func (m *Muscle) SetLiving(living bool) {
	m.living = living
}

// SetShowContraction toggles the force-dependent line display for this
// muscle.
func (m *Muscle) SetShowContraction(show bool) {
	m.showContraction = show
}

// ShowContraction reports whether the line display follows the force.
func (m *Muscle) ShowContraction() bool {
	return m.showContraction
}

// PrepareForSimulation brings the muscle to life and picks up the current
// contraction display preference.
func (m *Muscle) PrepareForSimulation(prefs settings.Preferences) {
	m.SetLiving(true)
	m.SetShowContraction(prefs.ShowMuscleContraction)
}

// Step is the fixed-step update. It applies the commanded force in the
// current direction when the muscle is attached and living. An expanding
// step of a muscle that cannot expand does nothing.
func (m *Muscle) Step(dt float64) error {
	if m.state != attached || !m.living {
		return nil
	}
	if m.action == Expand {
		return m.Expand(m.force)
	}
	return m.Contract(m.force)
}

// Contract pulls both anchors toward their midpoint with force.
func (m *Muscle) Contract(force float64) error {
	return m.apply(Contract, force)
}

// Expand pushes both anchors away from their midpoint with force. It does
// nothing for muscles that cannot expand.
func (m *Muscle) Expand(force float64) error {
	if !m.data.CanExpand {
		return nil
	}
	return m.apply(Expand, force)
}

func (m *Muscle) apply(action Action, force float64) error {
	if m.state != attached {
		return nil
	}
	pair, err := Forces(m.start.Center(), m.end.Center(), action, force)
	if err != nil {
		return err
	}
	m.physics.AddForceAtPoint(m.start.Body(), pair.Start, pair.StartPoint)
	m.physics.AddForceAtPoint(m.end.Body(), pair.End, pair.EndPoint)
	return nil
}

// Destroy removes the spring and disconnects both anchors. Calling it again
// does nothing.
func (m *Muscle) Destroy() {
	if m.state == destroyed {
		return
	}
	m.destroySpring()
	if m.start != nil {
		m.start.Disconnect(m)
	}
	if m.end != nil {
		m.end.Disconnect(m)
	}
	m.state = destroyed
	m.living = false
}

// DestroyWithoutDisconnecting removes the spring but leaves the anchors'
// bookkeeping alone. Use it only when the anchors are being removed too.
func (m *Muscle) DestroyWithoutDisconnecting() {
	if m.state == destroyed {
		return
	}
	m.destroySpring()
	m.state = destroyed
	m.living = false
}

func (m *Muscle) destroySpring() {
	if m.spring != nil && m.physics != nil {
		m.physics.DestroyConstraint(m.spring)
	}
	m.spring = nil
}

// Equal reports whether both muscles span the same pair of anchors, in either
// order.
func (m *Muscle) Equal(other *Muscle) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m == other {
		return true
	}
	if m.start == nil || m.end == nil || other.start == nil || other.end == nil {
		return false
	}
	a0, a1 := m.start.Key(), m.end.Key()
	b0, b1 := other.start.Key(), other.end.Key()
	return (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0)
}
