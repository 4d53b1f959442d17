package muscle

import "math"

// AttachmentMode selects which id pair of a Data record is meaningful.
type AttachmentMode int

const (
	AttachBones AttachmentMode = iota
	AttachJoints
)

func (m AttachmentMode) String() string {
	switch m {
	case AttachJoints:
		return "joints"
	default:
		return "bones"
	}
}

// InvalidID marks the id pair that the attachment mode does not use.
const InvalidID = -1

// DefaultStrength is the maximum force given to newly placed muscles.
const DefaultStrength = 1500.0

// Data describes one muscle of a creature. Values are never mutated after
// construction; an edit builds a new Data.
type Data struct {
	ID           int
	Mode         AttachmentMode
	StartBoneID  int
	EndBoneID    int
	StartJointID int
	EndJointID   int
	Strength     float64
	CanExpand    bool
	UserID       string
}

// NewBoneData builds a record for a muscle spanning two bones.
func NewBoneData(id, startBoneID, endBoneID int, strength float64, canExpand bool, userID string) (Data, error) {
	if err := checkStrength(strength); err != nil {
		return Data{}, err
	}
	return Data{
		ID:           id,
		Mode:         AttachBones,
		StartBoneID:  startBoneID,
		EndBoneID:    endBoneID,
		StartJointID: InvalidID,
		EndJointID:   InvalidID,
		Strength:     strength,
		CanExpand:    canExpand,
		UserID:       userID,
	}, nil
}

// NewJointData builds a record for a muscle spanning two joints.
func NewJointData(id, startJointID, endJointID int, strength float64, canExpand bool, userID string) (Data, error) {
	if err := checkStrength(strength); err != nil {
		return Data{}, err
	}
	return Data{
		ID:           id,
		Mode:         AttachJoints,
		StartBoneID:  InvalidID,
		EndBoneID:    InvalidID,
		StartJointID: startJointID,
		EndJointID:   endJointID,
		Strength:     strength,
		CanExpand:    canExpand,
		UserID:       userID,
	}, nil
}

func checkStrength(strength float64) error {
	if strength < 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return ErrNegativeStrength
	}
	return nil
}

// AttachedToJoints reports whether the endpoints are joint ids.
func (d Data) AttachedToJoints() bool {
	return d.Mode == AttachJoints
}

// StartID returns the start endpoint id for the active mode.
func (d Data) StartID() int {
	if d.Mode == AttachJoints {
		return d.StartJointID
	}
	return d.StartBoneID
}

// EndID returns the end endpoint id for the active mode.
func (d Data) EndID() int {
	if d.Mode == AttachJoints {
		return d.EndJointID
	}
	return d.EndBoneID
}
