package tether

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	config            Config
	logger            Logger
	registerer        prometheus.Registerer
	tracerProvider    trace.TracerProvider
	declarations      *Declarations
	containerToken    any
	hasContainerToken bool
}

// Option configures a Container.
type Option func(*options)

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithLogger sets the logger. It takes precedence over Config.Logging.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsRegisterer enables metrics, registered with reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithTracerProvider sets the provider spans are started from. The global
// provider is used otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = provider
	}
}

// WithDeclarations shares a declaration table with the container.
func WithDeclarations(d *Declarations) Option {
	return func(o *options) {
		o.declarations = d
	}
}

// WithContainerToken registers the container under token. It takes
// precedence over Config.ContainerToken.
func WithContainerToken(token any) Option {
	return func(o *options) {
		o.containerToken = token
		o.hasContainerToken = true
	}
}

// RegisterOption adjusts a single registration.
type RegisterOption func(*Registration)

// WithToken registers under token instead of the type the recipe produces.
func WithToken(token any) RegisterOption {
	return func(r *Registration) {
		r.Token = token
	}
}
