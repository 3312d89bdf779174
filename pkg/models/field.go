package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldType names the value kind a record field accepts
type FieldType string

const (
	FieldInteger FieldType = "integer"
	FieldFloat   FieldType = "float"
	FieldString  FieldType = "string"
	FieldTime    FieldType = "time"
)

// Field describes one editable field of a record
type Field struct {
	Name        string    `yaml:"name" json:"name"`
	Type        FieldType `yaml:"type" json:"type"`
	Description string    `yaml:"description" json:"description"`
	Unit        string    `yaml:"unit,omitempty" json:"unit,omitempty"`
	Min         *float64  `yaml:"min,omitempty" json:"min,omitempty"`
	Max         *float64  `yaml:"max,omitempty" json:"max,omitempty"`
}

// Record is implemented by every value type held in a record list or edited as a group.
// WithField never mutates the receiver.
type Record[T any] interface {
	Fields() []Field
	Value(name string) (interface{}, error)
	WithField(name string, value interface{}) (T, error)
	Validate() error
}

func bound(v float64) *float64 { return &v }

// LookupField finds a field by name in a schema
func LookupField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CheckRange validates v against the field's bounds.
func (f Field) CheckRange(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewValidationError(f.Name, "must be a finite number")
	}
	if f.Min != nil && v < *f.Min {
		return NewValidationError(f.Name, "must be at least %g", *f.Min)
	}
	if f.Max != nil && v > *f.Max {
		return NewValidationError(f.Name, "must be at most %g", *f.Max)
	}
	return nil
}

// Float coerces value to a float64 and checks the field bounds
func (f Field) Float(value interface{}) (float64, error) {
	v, err := toFloat64(value)
	if err != nil {
		return 0, NewValidationError(f.Name, "%v", err)
	}
	if err := f.CheckRange(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Int coerces value to an int and checks the field bounds
func (f Field) Int(value interface{}) (int, error) {
	v, err := toInt(value)
	if err != nil {
		return 0, NewValidationError(f.Name, "%v", err)
	}
	if err := f.CheckRange(float64(v)); err != nil {
		return 0, err
	}
	return v, nil
}

// String coerces value to a string
func (f Field) String(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case nil:
		return "", nil
	default:
		return "", NewValidationError(f.Name, "expected text, got %T", value)
	}
}

// Time coerces value to a TimeOfDay
func (f Field) Time(value interface{}) (TimeOfDay, error) {
	switch v := value.(type) {
	case TimeOfDay:
		if !v.Valid() {
			return TimeOfDay{}, NewValidationError(f.Name, "invalid time of day %s", v)
		}
		return v, nil
	case string:
		t, err := ParseTimeOfDay(v)
		if err != nil {
			return TimeOfDay{}, NewValidationError(f.Name, "%v", err)
		}
		return t, nil
	default:
		return TimeOfDay{}, NewValidationError(f.Name, "expected HH:MM, got %T", value)
	}
}

func unknownField(name string) error {
	return NewValidationError(name, "unknown field")
}

func toFloat64(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", val)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// toInt accepts whole numbers that fit in 32 bits, so results do not depend on the
// platform int size.
func toInt(v interface{}) (int, error) {
	var n int64
	switch val := v.(type) {
	case int:
		n = int64(val)
	case int32:
		n = int64(val)
	case int64:
		n = val
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", val)
		}
		n = i
	default:
		f, err := toFloat64(v)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("expected a whole number, got %g", f)
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return 0, fmt.Errorf("%g is out of range", f)
		}
		return int(f), nil
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%d is out of range", n)
	}
	return int(n), nil
}
