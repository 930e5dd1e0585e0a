// Package registry maintains definitions of known game settings: their
// types, ranges, defaults, and descriptions.
//
// The parser and serializer are value-type-agnostic; everything crossing the
// store boundary is a string. The registry is the layer that knows what a
// given key is supposed to hold, and it is the only place validation
// happens. Unknown keys are always permitted, since the profile carries
// many settings this tool has no definition for.
package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// SettingType represents the expected data type of a setting value.
type SettingType uint8

const (
	// TypeString accepts any value.
	TypeString SettingType = iota
	// TypeBool accepts 0/1 and true/false spellings.
	TypeBool
	// TypeInt accepts integers, optionally range-bounded.
	TypeInt
	// TypeFloat accepts decimal numbers, optionally range-bounded.
	TypeFloat
	// TypeEnum accepts one of a fixed set of values.
	TypeEnum
)

// String returns the type name.
func (t SettingType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Setting defines one known game setting.
type Setting struct {
	// Key is the dot-namespaced setting key (e.g. "GstRender.VSyncMode").
	Key string

	// Type is the expected value type.
	Type SettingType

	// Default is the value the game ships with, as a string.
	Default string

	// Description is human-readable documentation.
	Description string

	// Category groups settings for display ("Graphics", "Audio", "Input").
	Category string

	// Minimum and Maximum bound numeric types (nil means unbounded).
	Minimum *float64
	Maximum *float64

	// Enum lists allowed values for enum types.
	Enum []string
}

// Validate checks whether value is acceptable for this setting. The value
// arrives as a string, matching the wire format; coercion rules follow the
// declared type.
func (s *Setting) Validate(value string) error {
	switch s.Type {
	case TypeString:
		return nil
	case TypeBool:
		return s.validateBool(value)
	case TypeInt:
		return s.validateInt(value)
	case TypeFloat:
		return s.validateFloat(value)
	case TypeEnum:
		return s.validateEnum(value)
	default:
		return nil
	}
}

func (s *Setting) validateBool(value string) error {
	switch value {
	case "0", "1", "true", "false", "True", "False":
		return nil
	}
	return &ValidationError{Key: s.Key, Value: value, Message: "expected a boolean (0/1/true/false)"}
}

func (s *Setting) validateInt(value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return &ValidationError{Key: s.Key, Value: value, Message: "expected an integer"}
	}
	return s.validateRange(float64(n), value)
}

func (s *Setting) validateFloat(value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return &ValidationError{Key: s.Key, Value: value, Message: "expected a number"}
	}
	return s.validateRange(f, value)
}

func (s *Setting) validateRange(f float64, value string) error {
	if s.Minimum != nil && f < *s.Minimum {
		return &ValidationError{
			Key:     s.Key,
			Value:   value,
			Message: fmt.Sprintf("value is less than minimum %v", *s.Minimum),
		}
	}
	if s.Maximum != nil && f > *s.Maximum {
		return &ValidationError{
			Key:     s.Key,
			Value:   value,
			Message: fmt.Sprintf("value is greater than maximum %v", *s.Maximum),
		}
	}
	return nil
}

func (s *Setting) validateEnum(value string) error {
	for _, allowed := range s.Enum {
		if value == allowed {
			return nil
		}
	}
	return &ValidationError{
		Key:     s.Key,
		Value:   value,
		Message: fmt.Sprintf("value must be one of: %s", strings.Join(s.Enum, ", ")),
	}
}

// ValidationError describes a rejected setting value.
type ValidationError struct {
	// Key is the setting key that failed validation.
	Key string
	// Value is the rejected value.
	Value string
	// Message describes why the value was rejected.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %q)", e.Key, e.Message, e.Value)
}
