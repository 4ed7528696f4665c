package token

import "reflect"

// Symbol is a unique token value. Two symbols are never equal, even with the
// same description, so a Symbol works as an opaque identity for values that
// have no natural Go type of their own.
type Symbol struct {
	description string
}

// NewSymbol creates a new unique symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

// Description returns the description given at creation.
func (s *Symbol) Description() string {
	if s == nil {
		return ""
	}
	return s.description
}

func (s *Symbol) String() string {
	return "Symbol(" + s.Description() + ")"
}

// Comparable reports whether token can be used as a map key at runtime.
// nil is comparable and means "absent".
func Comparable(token any) bool {
	if token == nil {
		return true
	}
	return reflect.ValueOf(token).Comparable()
}
