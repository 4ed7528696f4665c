package di

import (
	"slices"
	"sync"
)

// Factory creates an instance without arguments.
type Factory func() (any, error)

// Constructor builds an instance from positionally resolved arguments.
type Constructor interface {
	Construct(args []any) (any, error)
}

// MappedDependency marks a constructor parameter whose token is qualified.
type MappedDependency struct {
	Token     any
	Qualifier any
}

// Descriptor describes how to produce an instance. Construction modes are
// tried in the order instance, factory, constructor.
type Descriptor struct {
	constructor   Constructor
	dependencyIDs []string
	factory       Factory
	instance      any
	hasInstance   bool
	preset        bool
	mu            sync.Mutex
}

// DescriptorOption configures a Descriptor.
type DescriptorOption func(*Descriptor)

// WithConstructor sets the constructor and the identifiers of its parameters.
func WithConstructor(ctor Constructor, dependencyIDs []string) DescriptorOption {
	return func(d *Descriptor) {
		d.constructor = ctor
		d.dependencyIDs = slices.Clone(dependencyIDs)
	}
}

// WithFactory sets the zero-argument factory.
func WithFactory(factory Factory) DescriptorOption {
	return func(d *Descriptor) {
		d.factory = factory
	}
}

// WithInstance sets a pre-built instance. A nil instance is a valid value.
func WithInstance(instance any) DescriptorOption {
	return func(d *Descriptor) {
		d.instance = instance
		d.hasInstance = true
		d.preset = true
	}
}

// NewDescriptor creates a descriptor from options.
func NewDescriptor(opts ...DescriptorOption) *Descriptor {
	d := &Descriptor{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DependencyIDs returns the identifiers of the constructor parameters in order.
func (d *Descriptor) DependencyIDs() []string {
	return slices.Clone(d.dependencyIDs)
}

// Constructor returns the constructor, if any.
func (d *Descriptor) Constructor() Constructor {
	return d.constructor
}

// Factory returns the factory, if any.
func (d *Descriptor) Factory() Factory {
	return d.factory
}

// Instance returns the cached or pre-built instance and whether one is set.
func (d *Descriptor) Instance() (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.instance, d.hasInstance
}

// Materialized reports whether an instance is set or cached.
func (d *Descriptor) Materialized() bool {
	_, ok := d.Instance()
	return ok
}

// Mode names the configured construction mode.
func (d *Descriptor) Mode() string {
	switch {
	case d.preset:
		return "instance"
	case d.factory != nil:
		return "factory"
	case d.constructor != nil:
		return "constructor"
	}
	return "none"
}

// Entry binds a dependency identifier to a lifecycle and a descriptor.
type Entry struct {
	ID         string
	Lifecycle  string
	Descriptor *Descriptor
}

// NewEntry creates a registry entry.
func NewEntry(id, lifecycle string, descriptor *Descriptor) *Entry {
	if descriptor == nil {
		descriptor = NewDescriptor()
	}
	return &Entry{ID: id, Lifecycle: lifecycle, Descriptor: descriptor}
}

// DependencyIDs returns the identifiers the entry requires.
func (e *Entry) DependencyIDs() []string {
	return e.Descriptor.dependencyIDs
}
