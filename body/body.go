// Package body holds the bones and joints muscles attach to.
package body

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// connections tracks the muscles attached to a body part in attach order.
type connections struct {
	muscles []*muscle.Muscle
}

// Connect records m. Connecting the same muscle twice is a no-op.
func (c *connections) Connect(m *muscle.Muscle) {
	if m == nil {
		return
	}
	for _, existing := range c.muscles {
		if existing == m {
			return
		}
	}
	c.muscles = append(c.muscles, m)
}

// Disconnect forgets m.
func (c *connections) Disconnect(m *muscle.Muscle) {
	for i, existing := range c.muscles {
		if existing == m {
			c.muscles = append(c.muscles[:i], c.muscles[i+1:]...)
			return
		}
	}
}

// Muscles returns the connected muscles.
func (c *connections) Muscles() []*muscle.Muscle {
	return append([]*muscle.Muscle(nil), c.muscles...)
}

// release tears down every connected muscle. The muscles are not told to
// disconnect because the part itself is going away.
func (c *connections) release() {
	for _, m := range c.muscles {
		m.DestroyWithoutDisconnecting()
	}
	c.muscles = nil
}

func center(b *cp.Body) r3.Vec {
	if b == nil {
		return r3.Vec{}
	}
	return physics.FromVector(b.Position())
}
