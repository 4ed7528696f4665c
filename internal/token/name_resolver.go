package token

import (
	"reflect"
	"sync"
)

// Namer renders a token as a human readable name.
type Namer interface {
	Name(token any) string
}

// NamerFunc adapts a function to the Namer interface.
type NamerFunc func(token any) string

func (f NamerFunc) Name(token any) string { return f(token) }

// NameResolver maps a token kind to the strategy naming tokens of that kind.
type NameResolver struct {
	strategies map[string]Namer
	mu         sync.RWMutex
}

// NewNameResolver creates a resolver without strategies.
func NewNameResolver() *NameResolver {
	return &NameResolver{strategies: make(map[string]Namer)}
}

// SetDefaultStrategies installs the built-in naming strategies.
func (r *NameResolver) SetDefaultStrategies() {
	r.Set(KindType, NamerFunc(typeName))
	r.Set(KindInterface, NamerFunc(interfaceName))
	r.Set(KindString, NamerFunc(stringName))
	r.Set(KindSymbol, NamerFunc(symbolName))
}

// Set adds or replaces the strategy for kind.
func (r *NameResolver) Set(kind string, namer Namer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[kind] = namer
}

// Name returns the token's name, or KindUnknown when kind has no strategy.
func (r *NameResolver) Name(token any, kind string) string {
	r.mu.RLock()
	namer, ok := r.strategies[kind]
	r.mu.RUnlock()

	if !ok {
		return KindUnknown
	}
	return namer.Name(token)
}

func typeName(token any) string {
	return token.(reflect.Type).String()
}

func interfaceName(token any) string {
	t := token.(reflect.Type)
	if t.Name() == "" {
		return "Unknown Interface"
	}
	return t.Name()
}

func stringName(token any) string {
	if s := token.(string); s != "" {
		return s
	}
	return "Empty String"
}

func symbolName(token any) string {
	if d := token.(*Symbol).Description(); d != "" {
		return d
	}
	return "Unknown Symbol"
}
