package token

import (
	"reflect"
	"sync"
)

// Built-in token kinds.
const (
	KindType      = "TYPE"
	KindInterface = "INTERFACE"
	KindString    = "STRING"
	KindSymbol    = "SYMBOL"
	KindUnknown   = "UNKNOWN"
)

// Checker reports whether a token belongs to a kind.
type Checker interface {
	Check(token any) bool
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(token any) bool

func (f CheckerFunc) Check(token any) bool { return f(token) }

// TypeResolver classifies tokens by asking its checkers in registration order.
type TypeResolver struct {
	order    []string
	checkers map[string]Checker
	mu       sync.RWMutex
}

// NewTypeResolver creates a resolver without checkers.
func NewTypeResolver() *TypeResolver {
	return &TypeResolver{checkers: make(map[string]Checker)}
}

// SetDefaultCheckers installs the built-in checkers.
func (r *TypeResolver) SetDefaultCheckers() {
	r.Set(KindType, CheckerFunc(isConcreteType))
	r.Set(KindInterface, CheckerFunc(isInterfaceType))
	r.Set(KindString, CheckerFunc(isString))
	r.Set(KindSymbol, CheckerFunc(isSymbol))
}

// Set adds a checker or replaces the checker of an existing kind in place.
func (r *TypeResolver) Set(kind string, checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkers[kind]; !exists {
		r.order = append(r.order, kind)
	}
	r.checkers[kind] = checker
}

// TokenType returns the first kind whose checker accepts token, or KindUnknown.
func (r *TypeResolver) TokenType(token any) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, kind := range r.order {
		if r.checkers[kind].Check(token) {
			return kind
		}
	}
	return KindUnknown
}

func isConcreteType(token any) bool {
	t, ok := token.(reflect.Type)
	return ok && t != nil && t.Kind() != reflect.Interface
}

func isInterfaceType(token any) bool {
	t, ok := token.(reflect.Type)
	return ok && t != nil && t.Kind() == reflect.Interface
}

func isString(token any) bool {
	_, ok := token.(string)
	return ok
}

func isSymbol(token any) bool {
	s, ok := token.(*Symbol)
	return ok && s != nil
}
