package component

import "github.com/milk9111/musclesim/muscle"

// Muscle holds the runtime actuator an entity drives.
type Muscle struct {
	Actuator *muscle.Muscle
	// LastErr is the error from the most recent fixed step, if any.
	LastErr error
}

var MuscleComponent = NewComponent[Muscle]()
