package model

import "strings"

// Flag is a normalized tri-state boolean. Documents may express flags as
// booleans or as case-insensitive "true"/"false" strings.
type Flag int

const (
	FlagUnset Flag = iota
	FlagTrue
	FlagFalse
)

// ParseFlag normalizes a loosely typed flag value; unrecognized values are unset
func ParseFlag(value interface{}) Flag {
	switch actual := value.(type) {
	case bool:
		if actual {
			return FlagTrue
		}
		return FlagFalse
	case *bool:
		if actual == nil {
			return FlagUnset
		}
		return ParseFlag(*actual)
	case string:
		switch strings.ToLower(actual) {
		case "true":
			return FlagTrue
		case "false":
			return FlagFalse
		}
	}
	return FlagUnset
}

// IsTrue returns true for FlagTrue
func (f Flag) IsTrue() bool { return f == FlagTrue }

// IsFalse returns true only when the flag was explicitly false
func (f Flag) IsFalse() bool { return f == FlagFalse }

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	}
	return "unset"
}
