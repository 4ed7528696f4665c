package tether

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/xraph/tether/internal/commands"
	"github.com/xraph/tether/internal/di"
	"github.com/xraph/tether/internal/diagnostics"
	"github.com/xraph/tether/internal/errors"
	"github.com/xraph/tether/internal/logger"
	"github.com/xraph/tether/internal/metrics"
	"github.com/xraph/tether/internal/observability"
	"github.com/xraph/tether/internal/token"
)

// Built-in lifecycles.
const (
	Singleton = di.Singleton
	Transient = di.Transient
)

type (
	// Factory creates an instance without arguments.
	Factory = di.Factory
	// Entry is a registry entry handed to lifecycle strategies.
	Entry = di.Entry
	// Strategy produces an instance for an entry from its resolved arguments.
	Strategy = di.Strategy
	// StrategyFunc adapts a function to Strategy.
	StrategyFunc = di.StrategyFunc
	// Snapshot is a point in time view of a container.
	Snapshot = diagnostics.Snapshot
)

// Construct builds an instance for entry from its instance, factory or
// constructor, in that order. Custom strategies use it to construct.
func Construct(entry *Entry, args []any) (any, error) {
	return di.Construct(entry, args)
}

// Registration is the general form of every Add method.
type Registration struct {
	Lifecycle string
	Token     any
	Qualifier any

	// Constructor is a Go function or a Constructor.
	Constructor any
	Factory     Factory
	Instance    any
	HasInstance bool
}

// Container registers dependencies and resolves them.
type Container struct {
	tokens       *token.Store
	types        *token.TypeResolver
	names        *token.NameResolver
	graph        *di.DependencyGraph
	strategies   *di.Resolver
	declarations *Declarations
	exceptions   *diagnostics.ExceptionHandler

	addDependency     *commands.AddDependencyHandler
	resolveDependency *commands.ResolveDependencyHandler
	resolveSingletons *commands.ResolveSingletonsHandler

	logger  logger.Logger
	metrics metrics.Recorder
	tracer  *observability.Tracer

	containerToken any
	buildRequired  bool
	built          atomic.Bool
}

// New creates a container and registers it as a singleton under its own
// token.
func New(opts ...Option) (*Container, error) {
	o := options{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.config

	c := &Container{
		tokens:        token.NewStore(),
		types:         token.NewTypeResolver(),
		names:         token.NewNameResolver(),
		graph:         di.NewDependencyGraph(),
		strategies:    di.NewResolver(),
		declarations:  o.declarations,
		buildRequired: !cfg.DisableBuildRequired,
		tracer:        observability.NewTracer(o.tracerProvider),
	}

	if c.declarations == nil {
		c.declarations = NewDeclarations()
	}

	switch {
	case o.logger != nil:
		c.logger = o.logger
	case cfg.Logging.Level != "":
		c.logger = logger.NewLogger(cfg.Logging)
	default:
		c.logger = logger.NewNoopLogger()
	}
	c.logger = c.logger.Named("tether")

	if o.registerer != nil {
		collector, err := metrics.NewCollector(o.registerer, cfg.Metrics.Namespace)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		c.metrics = collector
	} else {
		c.metrics = metrics.NewNoOpRecorder()
	}

	if !cfg.DisableDefaultStrategies {
		c.strategies.SetDefaultStrategies()
	}
	if !cfg.DisableDefaultTokenTypeCheckers {
		c.types.SetDefaultCheckers()
	}
	if !cfg.DisableDefaultTokenNameStrategies {
		c.names.SetDefaultStrategies()
	}
	c.strategies.Observe(c.observeDispatch)

	c.exceptions = diagnostics.NewExceptionHandler(c.tokens, c.types, c.names)
	c.addDependency = commands.NewAddDependencyHandler(c.tokens, c.graph, c.declarations)
	c.resolveDependency = commands.NewResolveDependencyHandler(c.tokens, c.graph, c.strategies)
	c.resolveSingletons = commands.NewResolveSingletonsHandler(c.graph, c.strategies)

	switch {
	case o.hasContainerToken:
		c.containerToken = o.containerToken
	case cfg.ContainerToken != "":
		c.containerToken = cfg.ContainerToken
	default:
		c.containerToken = reflect.TypeFor[*Container]()
	}

	if err := c.Add(Registration{
		Lifecycle:   Singleton,
		Token:       c.containerToken,
		Instance:    c,
		HasInstance: true,
	}); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) observeDispatch(entry *di.Entry, elapsed time.Duration, err error) {
	c.metrics.Dispatched(entry.Lifecycle, elapsed, err)
	c.logger.Debug("dependency dispatched",
		logger.DependencyID(entry.ID),
		logger.Lifecycle(entry.Lifecycle),
		logger.Duration("elapsed", elapsed),
		logger.Bool("failed", err != nil),
	)
}

// Add registers a dependency under any lifecycle, including custom ones
// installed with AddLifecycle. When no token is given the constructor's
// result type, or the instance's dynamic type, is used.
func (c *Container) Add(reg Registration) error {
	if reg.Lifecycle == "" {
		return errors.ErrMissingLifecycle
	}

	var ctor di.Constructor
	if reg.Constructor != nil {
		var err error
		if ctor, err = toConstructor(reg.Constructor); err != nil {
			return err
		}
	}

	tok := reg.Token
	if tok == nil {
		tok = defaultToken(ctor, reg)
	}
	if tok == nil {
		return errors.ErrMissingToken
	}

	for _, t := range []any{tok, reg.Qualifier} {
		if !token.Comparable(t) {
			return fmt.Errorf("%w, got %T", errors.ErrInvalidToken, t)
		}
	}

	out := c.addDependency.Handle(commands.AddDependencyInput{
		Token:       tok,
		Qualifier:   reg.Qualifier,
		Lifecycle:   reg.Lifecycle,
		Constructor: ctor,
		Factory:     reg.Factory,
		Instance:    reg.Instance,
		HasInstance: reg.HasInstance,
	})

	c.metrics.Registered(reg.Lifecycle)
	c.logger.Debug("dependency registered",
		logger.DependencyID(out.DependencyID),
		logger.String("token", c.exceptions.Describe(out.DependencyID)),
		logger.Lifecycle(reg.Lifecycle),
	)

	return nil
}

func toConstructor(ctor any) (di.Constructor, error) {
	if c, ok := ctor.(Constructor); ok {
		return c, nil
	}
	return di.NewFuncConstructor(ctor)
}

func defaultToken(ctor di.Constructor, reg Registration) any {
	if fc, ok := ctor.(*di.FuncConstructor); ok {
		return fc.ResultType()
	}
	if reg.HasInstance && reg.Instance != nil {
		return reflect.TypeOf(reg.Instance)
	}
	return nil
}

func (c *Container) add(lifecycle string, reg Registration, opts []RegisterOption) error {
	for _, opt := range opts {
		opt(&reg)
	}
	reg.Lifecycle = lifecycle
	return c.Add(reg)
}

// AddSingleton registers ctor as a singleton under its result type.
func (c *Container) AddSingleton(ctor any, opts ...RegisterOption) error {
	if ctor == nil {
		return errors.ErrMissingConstructor
	}
	return c.add(Singleton, Registration{Constructor: ctor}, opts)
}

// AddMappedSingleton registers ctor as a singleton under its result type
// narrowed by qualifier.
func (c *Container) AddMappedSingleton(qualifier, ctor any, opts ...RegisterOption) error {
	if qualifier == nil {
		return errors.ErrMissingQualifier
	}
	if ctor == nil {
		return errors.ErrMissingConstructor
	}
	return c.add(Singleton, Registration{Qualifier: qualifier, Constructor: ctor}, opts)
}

// AddSingletonFactory registers a singleton built by factory. The factory
// may resolve other dependencies from the container, but resolving its own
// token blocks forever.
func (c *Container) AddSingletonFactory(token any, factory Factory) error {
	if factory == nil {
		return errors.ErrMissingFactory
	}
	return c.add(Singleton, Registration{Token: token, Factory: factory}, nil)
}

// AddMappedSingletonFactory registers a qualified singleton built by factory.
func (c *Container) AddMappedSingletonFactory(token, qualifier any, factory Factory) error {
	if qualifier == nil {
		return errors.ErrMissingQualifier
	}
	if factory == nil {
		return errors.ErrMissingFactory
	}
	return c.add(Singleton, Registration{Token: token, Qualifier: qualifier, Factory: factory}, nil)
}

// AddSingletonInstance registers a pre-built instance under its dynamic type.
func (c *Container) AddSingletonInstance(instance any, opts ...RegisterOption) error {
	if instance == nil {
		return errors.ErrMissingInstance
	}
	return c.add(Singleton, Registration{Instance: instance, HasInstance: true}, opts)
}

// AddMappedSingletonInstance registers a pre-built instance under its dynamic
// type narrowed by qualifier.
func (c *Container) AddMappedSingletonInstance(qualifier, instance any, opts ...RegisterOption) error {
	if qualifier == nil {
		return errors.ErrMissingQualifier
	}
	if instance == nil {
		return errors.ErrMissingInstance
	}
	return c.add(Singleton, Registration{Qualifier: qualifier, Instance: instance, HasInstance: true}, opts)
}

// AddTransient registers ctor, called on every resolution.
func (c *Container) AddTransient(ctor any, opts ...RegisterOption) error {
	if ctor == nil {
		return errors.ErrMissingConstructor
	}
	return c.add(Transient, Registration{Constructor: ctor}, opts)
}

// AddMappedTransient registers ctor under its result type narrowed by
// qualifier, called on every resolution.
func (c *Container) AddMappedTransient(qualifier, ctor any, opts ...RegisterOption) error {
	if qualifier == nil {
		return errors.ErrMissingQualifier
	}
	if ctor == nil {
		return errors.ErrMissingConstructor
	}
	return c.add(Transient, Registration{Qualifier: qualifier, Constructor: ctor}, opts)
}

// AddTransientFactory registers factory, called on every resolution.
func (c *Container) AddTransientFactory(token any, factory Factory) error {
	if factory == nil {
		return errors.ErrMissingFactory
	}
	return c.add(Transient, Registration{Token: token, Factory: factory}, nil)
}

// AddMappedTransientFactory registers a qualified factory, called on every
// resolution.
func (c *Container) AddMappedTransientFactory(token, qualifier any, factory Factory) error {
	if qualifier == nil {
		return errors.ErrMissingQualifier
	}
	if factory == nil {
		return errors.ErrMissingFactory
	}
	return c.add(Transient, Registration{Token: token, Qualifier: qualifier, Factory: factory}, nil)
}

// AddLifecycle installs a strategy for a lifecycle name, replacing any
// existing one, built-ins included.
func (c *Container) AddLifecycle(name string, strategy Strategy) error {
	if name == "" {
		return errors.ErrMissingLifecycle
	}
	if strategy == nil {
		return fmt.Errorf("%w, missing strategy for %s", errors.ErrInvalidConfiguration, name)
	}
	c.strategies.Set(name, strategy)
	return nil
}

// SetTokenTypeChecker installs a token kind used when describing errors.
func (c *Container) SetTokenTypeChecker(kind string, checker TokenChecker) {
	c.types.Set(kind, checker)
}

// SetTokenNameStrategy installs the naming strategy for a token kind.
func (c *Container) SetTokenNameStrategy(kind string, namer TokenNamer) {
	c.names.Set(kind, namer)
}

// Declarations returns the table constructor parameters are declared in.
func (c *Container) Declarations() *Declarations {
	return c.declarations
}

// Token returns the token the container is registered under.
func (c *Container) Token() any {
	return c.containerToken
}

// Build constructs every singleton in dependency order. Missing and cyclic
// dependencies are reported here, before anything is retrieved.
func (c *Container) Build(ctx context.Context) error {
	ctx, span := c.tracer.StartSpan(ctx, "tether.build")
	start := time.Now()

	out, err := c.resolveSingletons.Handle(ctx)
	elapsed := time.Since(start)

	for _, id := range out.Resolved {
		c.tracer.AddEvent(ctx, "singleton resolved",
			observability.AttrDependencyID.String(id),
			observability.AttrLifecycle.String(Singleton),
		)
	}
	span.SetAttributes(observability.AttrSingletons.Int(len(out.Resolved)))

	c.metrics.Built(elapsed, len(out.Resolved), err)
	c.tracer.EndSpan(span, err)

	if err != nil {
		err = c.exceptions.Handle(err)
		fields := []logger.Field{
			logger.Error(err),
			logger.String("trace_id", observability.TraceID(ctx)),
		}
		if ce, ok := errors.AsContainerError(err); ok {
			fields = append(fields, logger.DependencyIDs(ce.DependencyIDs))
		}
		c.logger.Error("container build failed", fields...)
		return err
	}

	c.built.Store(true)
	c.logger.Info("container built",
		logger.Int("singletons", len(out.Resolved)),
		logger.Duration("elapsed", elapsed),
	)

	return nil
}

// Built reports whether Build completed.
func (c *Container) Built() bool {
	return c.built.Load()
}

// Get resolves the dependency registered under token.
//
// A singleton is constructed under its own lock. Calling Get for a singleton
// from inside that singleton's factory or constructor deadlocks; declare the
// dependency instead so Build can report the cycle.
func (c *Container) Get(token any) (any, error) {
	if token == nil {
		return nil, errors.ErrMissingToken
	}
	return c.get(token, nil)
}

// GetMapped resolves the dependency registered under token and qualifier.
func (c *Container) GetMapped(token, qualifier any) (any, error) {
	if token == nil {
		return nil, errors.ErrMissingToken
	}
	if qualifier == nil {
		return nil, errors.ErrMissingQualifier
	}
	return c.get(token, qualifier)
}

func (c *Container) get(tok, qualifier any) (any, error) {
	if c.buildRequired && !c.built.Load() {
		return nil, errors.ErrContainerNotBuilt
	}

	for _, t := range []any{tok, qualifier} {
		if !token.Comparable(t) {
			return nil, fmt.Errorf("%w, got %T", errors.ErrInvalidToken, t)
		}
	}

	out, err := c.resolveDependency.Handle(commands.ResolveDependencyInput{
		Token:     tok,
		Qualifier: qualifier,
	})
	c.metrics.Resolved(err)

	if err != nil {
		if _, structural := errors.AsContainerError(err); structural {
			err = c.exceptions.Handle(err)
			c.logger.Warn("dependency resolution failed", logger.Error(err))
		}
		return nil, err
	}

	return out.Instance, nil
}

// Snapshot captures the registered entries and their construction order.
func (c *Container) Snapshot() Snapshot {
	return diagnostics.NewSnapshot(c.graph, c.exceptions, c.built.Load())
}
