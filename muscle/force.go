package muscle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ForcePair is the pair of point forces a muscle applies in one step.
type ForcePair struct {
	Start      r3.Vec
	StartPoint r3.Vec
	End        r3.Vec
	EndPoint   r3.Vec
}

// Forces computes the forces of magnitude force acting on the anchor centers
// start and end. Contracting forces point at the midpoint, expanding forces
// away from it. Coincident centers have no direction; the pair is zero and
// ErrDegenerateGeometry is returned.
func Forces(start, end r3.Vec, action Action, force float64) (ForcePair, error) {
	pair := ForcePair{StartPoint: start, EndPoint: end}

	mid := r3.Scale(0.5, r3.Add(start, end))
	var toStart, toEnd r3.Vec
	if action == Expand {
		toStart = r3.Sub(start, mid)
		toEnd = r3.Sub(end, mid)
	} else {
		toStart = r3.Sub(mid, start)
		toEnd = r3.Sub(mid, end)
	}

	startDir, ok := normalize(toStart)
	if !ok {
		return pair, ErrDegenerateGeometry
	}
	endDir, ok := normalize(toEnd)
	if !ok {
		return pair, ErrDegenerateGeometry
	}

	pair.Start = r3.Scale(force, startDir)
	pair.End = r3.Scale(force, endDir)
	return pair, nil
}

func normalize(v r3.Vec) (r3.Vec, bool) {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}
