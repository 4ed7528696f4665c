package tether

import (
	"fmt"
)

// Resolve with type safety, using T as the token.
func Resolve[T any](c *Container) (T, error) {
	return ResolveToken[T](c, TypeOf[T]())
}

// ResolveToken resolves the dependency registered under token as a T.
func ResolveToken[T any](c *Container, token any) (T, error) {
	instance, err := c.Get(token)
	if err != nil {
		var zero T
		return zero, err
	}
	return typed[T](instance, token)
}

// ResolveMapped resolves the dependency registered under T and qualifier.
func ResolveMapped[T any](c *Container, qualifier any) (T, error) {
	instance, err := c.GetMapped(TypeOf[T](), qualifier)
	if err != nil {
		var zero T
		return zero, err
	}
	return typed[T](instance, TypeOf[T]())
}

// Must resolves or panics - use only during startup
func Must[T any](c *Container) T {
	instance, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", TypeOf[T](), err))
	}
	return instance
}

// typed converts instance to T. A nil instance yields the zero T.
func typed[T any](instance any, token any) (T, error) {
	var zero T
	if instance == nil {
		return zero, nil
	}
	v, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: dependency %v is %T, not %s", ErrTypeMismatch, token, instance, TypeOf[T]())
	}
	return v, nil
}
