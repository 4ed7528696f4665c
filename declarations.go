package tether

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/xraph/tether/internal/di"
	"github.com/xraph/tether/internal/errors"
	"github.com/xraph/tether/internal/token"
)

// Constructor builds an instance from positionally resolved arguments. Go
// functions are accepted wherever a Constructor is; implement it directly
// for recipes whose arity is only known at runtime.
type Constructor = di.Constructor

// Declarations records which tokens a constructor's parameters resolve to.
//
// Functions are identified by their code pointer, so closures created from
// the same function literal share their declarations. Undeclared function
// constructors resolve each parameter by its type.
type Declarations struct {
	funcs map[uintptr][]any
	ctors map[Constructor][]any
	mu    sync.RWMutex
}

// NewDeclarations creates an empty declaration table.
func NewDeclarations() *Declarations {
	return &Declarations{
		funcs: make(map[uintptr][]any),
		ctors: make(map[Constructor][]any),
	}
}

// Inject declares the tokens of ctor's parameters in order. Use Mapped for a
// qualified parameter. For function constructors the number of tokens must
// match the number of parameters.
func (d *Declarations) Inject(ctor any, tokens ...any) error {
	target, err := declarationTarget(ctor)
	if err != nil {
		return err
	}

	if target.params != nil && len(tokens) != len(target.params) {
		return fmt.Errorf("%w: %d tokens declared for %d parameters of %T",
			errors.ErrInvalidArgumentIndex, len(tokens), len(target.params), ctor)
	}

	for _, tok := range tokens {
		if err := validateDeclared(tok); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.store(target, slices.Clone(tokens))

	return nil
}

// InjectMapped qualifies the token of the parameter at index. The token is
// the one already declared for that position, or the parameter type when
// nothing was declared.
func (d *Declarations) InjectMapped(ctor any, index int, qualifier any) error {
	if qualifier == nil {
		return errors.ErrMissingQualifier
	}
	if !token.Comparable(qualifier) {
		return fmt.Errorf("%w, got %T", errors.ErrInvalidToken, qualifier)
	}

	target, err := declarationTarget(ctor)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	tokens := slices.Clone(d.lookup(target))
	if tokens == nil {
		tokens = typeTokens(target.params)
	}

	if index < 0 || index >= len(tokens) {
		return fmt.Errorf("%w: %d of %d", errors.ErrInvalidArgumentIndex, index, len(tokens))
	}

	tok := tokens[index]
	if m, ok := tok.(MappedDependency); ok {
		tok = m.Token
	}
	tokens[index] = Mapped(tok, qualifier)

	d.store(target, tokens)
	return nil
}

// DeclaredDependencies returns the tokens ctor's parameters resolve to.
func (d *Declarations) DeclaredDependencies(ctor Constructor) []any {
	target, err := declarationTarget(ctor)
	if err != nil {
		return nil
	}

	d.mu.RLock()
	tokens, ok := d.lookupOK(target)
	d.mu.RUnlock()

	if ok {
		return slices.Clone(tokens)
	}
	return typeTokens(target.params)
}

// validateDeclared rejects absent and uncomparable tokens. A mapped token
// needs both parts; without its token it would collide with the bare
// qualifier.
func validateDeclared(tok any) error {
	switch m := tok.(type) {
	case nil:
		return errors.ErrMissingToken
	case MappedDependency:
		return validateMapped(m)
	case *MappedDependency:
		if m == nil {
			return errors.ErrMissingToken
		}
		return validateMapped(*m)
	}

	if !token.Comparable(tok) {
		return fmt.Errorf("%w, got %T", errors.ErrInvalidToken, tok)
	}
	return nil
}

func validateMapped(m MappedDependency) error {
	if m.Token == nil {
		return errors.ErrMissingToken
	}
	if m.Qualifier == nil {
		return errors.ErrMissingQualifier
	}
	for _, t := range []any{m.Token, m.Qualifier} {
		if !token.Comparable(t) {
			return fmt.Errorf("%w, got %T", errors.ErrInvalidToken, t)
		}
	}
	return nil
}

// target identifies a constructor in the table. params is nil for
// constructors that are not Go functions.
type target struct {
	pointer uintptr
	ctor    Constructor
	params  []reflect.Type
}

func declarationTarget(ctor any) (target, error) {
	switch c := ctor.(type) {
	case nil:
		return target{}, errors.ErrMissingConstructor
	case *di.FuncConstructor:
		return target{pointer: c.Pointer(), params: nonNil(c.ParamTypes())}, nil
	case Constructor:
		if !token.Comparable(c) {
			return target{}, fmt.Errorf("%w, got %T", errors.ErrInvalidConstructor, ctor)
		}
		return target{ctor: c}, nil
	}

	fc, err := di.NewFuncConstructor(ctor)
	if err != nil {
		return target{}, err
	}
	return target{pointer: fc.Pointer(), params: nonNil(fc.ParamTypes())}, nil
}

func nonNil(params []reflect.Type) []reflect.Type {
	if params == nil {
		return []reflect.Type{}
	}
	return params
}

func (d *Declarations) lookup(t target) []any {
	tokens, _ := d.lookupOK(t)
	return tokens
}

func (d *Declarations) lookupOK(t target) ([]any, bool) {
	if t.ctor != nil {
		tokens, ok := d.ctors[t.ctor]
		return tokens, ok
	}
	tokens, ok := d.funcs[t.pointer]
	return tokens, ok
}

func (d *Declarations) store(t target, tokens []any) {
	if t.ctor != nil {
		d.ctors[t.ctor] = tokens
		return
	}
	d.funcs[t.pointer] = tokens
}

// typeTokens uses each parameter type as its token.
func typeTokens(params []reflect.Type) []any {
	if params == nil {
		return nil
	}
	tokens := make([]any, len(params))
	for i, p := range params {
		tokens[i] = p
	}
	return tokens
}
