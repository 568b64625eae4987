package beans

import (
	"encoding/json"
	"fmt"
)

// Scope specifies the lifecycle policy of a bean.
// The scope determines when instances are created and whether they are cached.
type Scope int

const (
	// Singleton specifies that a single instance of the bean is created during
	// Start and shared for the lifetime of the Context. It is the default scope.
	Singleton Scope = iota

	// Prototype specifies that a new instance is constructed, wired and
	// post-constructed on every lookup. The caller owns the returned instance.
	Prototype
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	switch s {
	case Singleton:
		return "Singleton"
	case Prototype:
		return "Prototype"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the scope is valid.
func (s Scope) IsValid() bool {
	return s >= Singleton && s <= Prototype
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Singleton", "singleton":
		*s = Singleton
	case "Prototype", "prototype":
		*s = Prototype
	default:
		return ScopeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(str))
}
