package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/tether/internal/errors"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "tether"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// CodeExternal labels errors raised by user factories and constructors.
const CodeExternal = "EXTERNAL"

// Collector records container activity as Prometheus metrics.
type Collector struct {
	registrations    *prometheus.CounterVec
	dispatches       *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	resolutions      *prometheus.CounterVec
	errors           *prometheus.CounterVec
	buildDuration    prometheus.Histogram
	singletons       prometheus.Gauge
}

// NewCollector creates the collector and registers it with reg. An empty
// namespace falls back to DefaultNamespace.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Dependencies registered, by lifecycle.",
		}, []string{"lifecycle"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Lifecycle strategy dispatches, by lifecycle and outcome.",
		}, []string{"lifecycle", "outcome"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent in lifecycle strategies.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"lifecycle"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Top level resolution requests, by outcome.",
		}, []string{"outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Container errors, by code.",
		}, []string{"code"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent building the container.",
			Buckets:   prometheus.DefBuckets,
		}),
		singletons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "eager_singletons",
			Help:      "Singletons constructed by the last build.",
		}),
	}

	for _, col := range c.collectors() {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.registrations,
		c.dispatches,
		c.dispatchDuration,
		c.resolutions,
		c.errors,
		c.buildDuration,
		c.singletons,
	}
}

func (c *Collector) Registered(lifecycle string) {
	c.registrations.WithLabelValues(lifecycle).Inc()
}

func (c *Collector) Dispatched(lifecycle string, elapsed time.Duration, err error) {
	c.dispatches.WithLabelValues(lifecycle, outcome(err)).Inc()
	c.dispatchDuration.WithLabelValues(lifecycle).Observe(elapsed.Seconds())
	c.countError(err)
}

// Resolved does not count the error code; the failing dispatch already did,
// except for lookups that never reached a strategy.
func (c *Collector) Resolved(err error) {
	c.resolutions.WithLabelValues(outcome(err)).Inc()
	if errors.IsMissingDependency(err) {
		c.countError(err)
	}
}

func (c *Collector) Built(elapsed time.Duration, singletons int, err error) {
	c.buildDuration.Observe(elapsed.Seconds())
	c.singletons.Set(float64(singletons))
	if errors.IsCyclicDependencies(err) || errors.IsMissingDependency(err) {
		c.countError(err)
	}
}

func (c *Collector) countError(err error) {
	if err == nil {
		return
	}
	code := errors.Code(err)
	if code == "" {
		code = CodeExternal
	}
	c.errors.WithLabelValues(code).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
