package di

import (
	"fmt"
	"reflect"

	"github.com/xraph/tether/internal/errors"
)

var errorType = reflect.TypeFor[error]()

// FuncConstructor calls a Go function with resolved arguments.
// Supported shapes are func(P1..Pn) R and func(P1..Pn) (R, error).
type FuncConstructor struct {
	fn       reflect.Value
	params   []reflect.Type
	result   reflect.Type
	hasError bool
}

// NewFuncConstructor validates fn and wraps it.
func NewFuncConstructor(fn any) (*FuncConstructor, error) {
	if fn == nil {
		return nil, errors.ErrInvalidConstructor
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || v.IsNil() || t.IsVariadic() {
		return nil, fmt.Errorf("%w, got %s", errors.ErrInvalidConstructor, t)
	}

	switch {
	case t.NumOut() == 1 && t.Out(0) != errorType:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, fmt.Errorf("%w, got %s", errors.ErrInvalidConstructor, t)
	}

	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}

	return &FuncConstructor{
		fn:       v,
		params:   params,
		result:   t.Out(0),
		hasError: t.NumOut() == 2,
	}, nil
}

// Construct calls the function. A nil argument becomes the zero value of its
// parameter; an error returned by the function is passed through untouched.
func (c *FuncConstructor) Construct(args []any) (any, error) {
	if len(args) != len(c.params) {
		return nil, fmt.Errorf("constructor %s expects %d arguments, got %d", c.fn.Type(), len(c.params), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		param := c.params[i]
		if arg == nil {
			in[i] = reflect.Zero(param)
			continue
		}

		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(param) {
			return nil, fmt.Errorf("%w: argument %d of %s is %s, want %s",
				errors.ErrTypeMismatch, i, c.fn.Type(), v.Type(), param)
		}
		in[i] = v
	}

	out := c.fn.Call(in)
	if c.hasError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	return out[0].Interface(), nil
}

// Func returns the wrapped function.
func (c *FuncConstructor) Func() any {
	return c.fn.Interface()
}

// Pointer returns the code pointer identifying the wrapped function.
func (c *FuncConstructor) Pointer() uintptr {
	return c.fn.Pointer()
}

// ParamTypes returns the parameter types in order.
func (c *FuncConstructor) ParamTypes() []reflect.Type {
	return append([]reflect.Type(nil), c.params...)
}

// ResultType returns the type of the constructed value.
func (c *FuncConstructor) ResultType() reflect.Type {
	return c.result
}
