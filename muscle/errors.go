package muscle

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeStrength   = errors.New("muscle: strength must be finite and >= 0")
	ErrNilAnchor          = errors.New("muscle: anchor is nil")
	ErrSameAnchor         = errors.New("muscle: start and end anchor are the same")
	ErrNotBound           = errors.New("muscle: attach called before bind")
	ErrAlreadyAttached    = errors.New("muscle: already attached")
	ErrAnchorKind         = errors.New("muscle: anchor kind does not match attachment mode")
	ErrNilPhysics         = errors.New("muscle: physics is nil")
	ErrDestroyed          = errors.New("muscle: muscle destroyed")
	ErrDegenerateGeometry = errors.New("muscle: anchor centers coincide")
	ErrMissingField       = errors.New("missing field")
	ErrNullField          = errors.New("null field")
)

// FormatError reports a document field that is missing or has the wrong type.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("muscle: decode %q: %v", e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
