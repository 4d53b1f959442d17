package muscle

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Document is the generic structured form of a muscle record.
type Document map[string]any

const (
	keyID         = "id"
	keyStartBone  = "startBoneID"
	keyEndBone    = "endBoneID"
	keyStartJoint = "startJointID"
	keyEndJoint   = "endJointID"
	keyJoints     = "isAttachedToJoints"
	keyStrength   = "strength"
	keyCanExpand  = "canExpand"
	keyUserID     = "userId"
)

// Encode returns the document form of d. The isAttachedToJoints key is only
// written for joint muscles so that bone muscles match documents written
// before joints existed.
func (d Data) Encode() Document {
	doc := Document{
		keyID:        d.ID,
		keyStrength:  d.Strength,
		keyCanExpand: d.CanExpand,
		keyUserID:    d.UserID,
	}
	if d.Mode == AttachJoints {
		doc[keyStartJoint] = d.StartJointID
		doc[keyEndJoint] = d.EndJointID
		doc[keyJoints] = true
	} else {
		doc[keyStartBone] = d.StartBoneID
		doc[keyEndBone] = d.EndBoneID
	}
	return doc
}

// Decode reads a record from doc. A missing isAttachedToJoints key means a
// bone muscle.
func Decode(doc Document) (Data, error) {
	id, err := field[int](doc, keyID)
	if err != nil {
		return Data{}, err
	}
	strength, err := field[float64](doc, keyStrength)
	if err != nil {
		return Data{}, err
	}
	canExpand, err := field[bool](doc, keyCanExpand)
	if err != nil {
		return Data{}, err
	}
	userID, err := field[string](doc, keyUserID)
	if err != nil {
		return Data{}, err
	}
	joints, err := optionalField(doc, keyJoints, false)
	if err != nil {
		return Data{}, err
	}

	startKey, endKey := keyStartBone, keyEndBone
	if joints {
		startKey, endKey = keyStartJoint, keyEndJoint
	}
	start, err := field[int](doc, startKey)
	if err != nil {
		return Data{}, err
	}
	end, err := field[int](doc, endKey)
	if err != nil {
		return Data{}, err
	}

	var d Data
	if joints {
		d, err = NewJointData(id, start, end, strength, canExpand, userID)
	} else {
		d, err = NewBoneData(id, start, end, strength, canExpand, userID)
	}
	if err != nil {
		return Data{}, &FormatError{Field: keyStrength, Err: err}
	}
	return d, nil
}

// MarshalJSON encodes the record through its document form.
func (d Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Encode())
}

// UnmarshalJSON decodes the record through its document form.
func (d *Data) UnmarshalJSON(b []byte) error {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("muscle: unmarshal document: %w", err)
	}
	decoded, err := Decode(doc)
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

func field[T any](doc Document, key string) (T, error) {
	var zero T
	raw, ok := doc[key]
	if !ok {
		return zero, &FormatError{Field: key, Err: ErrMissingField}
	}
	return decodeValue[T](key, raw)
}

func optionalField[T any](doc Document, key string, fallback T) (T, error) {
	raw, ok := doc[key]
	if !ok {
		return fallback, nil
	}
	return decodeValue[T](key, raw)
}

func decodeValue[T any](key string, raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, &FormatError{Field: key, Err: ErrNullField}
	}
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: integralHook,
		Result:     &out,
	})
	if err != nil {
		return zero, &FormatError{Field: key, Err: err}
	}
	if err := dec.Decode(raw); err != nil {
		return zero, &FormatError{Field: key, Err: err}
	}
	return out, nil
}

// integralHook rejects fractional or out-of-range numbers headed for integer
// fields instead of truncating or wrapping them.
func integralHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("expected integer, got %v", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("integer %v out of range", f)
		}
	}
	return data, nil
}
