package system

// Clock counts the fixed steps taken by the simulation.
type Clock struct {
	Tick int
	Dt   float64
}

// Time returns the simulated seconds elapsed before the current tick.
func (c *Clock) Time() float64 {
	if c == nil {
		return 0
	}
	return float64(c.Tick) * c.Dt
}

// Advance moves to the next tick.
func (c *Clock) Advance() {
	if c != nil {
		c.Tick++
	}
}
