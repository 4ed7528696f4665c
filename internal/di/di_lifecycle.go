package di

import (
	"sync"
	"time"

	"github.com/xraph/tether/internal/errors"
)

// Built-in lifecycle policies.
const (
	Singleton = "SINGLETON"
	Transient = "TRANSIENT"
)

// Strategy produces an instance for an entry from its resolved arguments.
type Strategy interface {
	Execute(entry *Entry, args []any) (any, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(entry *Entry, args []any) (any, error)

func (f StrategyFunc) Execute(entry *Entry, args []any) (any, error) { return f(entry, args) }

// DispatchObserver is notified after every dispatch.
type DispatchObserver func(entry *Entry, elapsed time.Duration, err error)

// Resolver dispatches entries to the strategy registered for their lifecycle.
type Resolver struct {
	strategies map[string]Strategy
	observer   DispatchObserver
	mu         sync.RWMutex
}

// NewResolver creates a resolver without strategies.
func NewResolver() *Resolver {
	return &Resolver{strategies: make(map[string]Strategy)}
}

// SetDefaultStrategies installs the singleton and transient strategies.
func (r *Resolver) SetDefaultStrategies() {
	r.Set(Singleton, SingletonStrategy{})
	r.Set(Transient, TransientStrategy{})
}

// Set registers strategy under name, replacing any previous one.
func (r *Resolver) Set(name string, strategy Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = strategy
}

// Strategy returns the strategy registered under name.
func (r *Resolver) Strategy(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}

// Observe installs an observer called after each dispatch.
func (r *Resolver) Observe(observer DispatchObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = observer
}

// Resolve produces an instance for entry according to its lifecycle.
func (r *Resolver) Resolve(entry *Entry, args []any) (any, error) {
	r.mu.RLock()
	strategy, ok := r.strategies[entry.Lifecycle]
	observer := r.observer
	r.mu.RUnlock()

	if !ok {
		err := errors.ErrInvalidLifecycle(entry.Lifecycle, entry.ID)
		if observer != nil {
			observer(entry, 0, err)
		}
		return nil, err
	}

	start := time.Now()
	instance, err := strategy.Execute(entry, args)
	if observer != nil {
		observer(entry, time.Since(start), err)
	}

	return instance, err
}

// Construct is the construction primitive shared by every strategy: the set
// instance, else the factory, else the constructor with args.
func Construct(entry *Entry, args []any) (any, error) {
	d := entry.Descriptor
	if instance, ok := d.Instance(); ok {
		return instance, nil
	}
	return construct(entry, args)
}

// construct skips the instance check. Callers holding the descriptor lock use it.
func construct(entry *Entry, args []any) (any, error) {
	d := entry.Descriptor

	if d.factory != nil {
		return d.factory()
	}

	if d.constructor == nil {
		return nil, errors.ErrCanNotConstructDependency(entry.ID)
	}

	return d.constructor.Construct(args)
}

// SingletonStrategy constructs an entry once and caches the result.
//
// The entry's lock is held while its recipe runs, so concurrent callers wait
// for the first construction. A recipe that resolves its own entry at
// runtime never returns.
type SingletonStrategy struct{}

func (SingletonStrategy) Execute(entry *Entry, args []any) (any, error) {
	d := entry.Descriptor

	// The check and the store happen under one lock so concurrent first
	// resolutions construct once.
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.hasInstance {
		return d.instance, nil
	}

	instance, err := construct(entry, args)
	if err != nil {
		return nil, err
	}

	d.instance = instance
	d.hasInstance = true

	return instance, nil
}

// TransientStrategy constructs a fresh instance on every call.
type TransientStrategy struct{}

func (TransientStrategy) Execute(entry *Entry, args []any) (any, error) {
	return Construct(entry, args)
}
