package metrics

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/tether/internal/errors"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "")
	require.NoError(t, err)
	return c, reg
}

func TestCollector_Registered(t *testing.T) {
	c, _ := newTestCollector(t)

	c.Registered("SINGLETON")
	c.Registered("SINGLETON")
	c.Registered("TRANSIENT")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.registrations.WithLabelValues("SINGLETON")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("TRANSIENT")))
}

func TestCollector_Dispatched(t *testing.T) {
	c, _ := newTestCollector(t)

	c.Dispatched("SINGLETON", time.Millisecond, nil)
	c.Dispatched("SCOPED", 0, errors.ErrInvalidLifecycle("SCOPED", "id"))
	c.Dispatched("TRANSIENT", time.Millisecond, stderrors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.dispatches.WithLabelValues("SINGLETON", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dispatches.WithLabelValues("SCOPED", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues(errors.CodeInvalidLifecycle)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues(CodeExternal)))
}

func TestCollector_Resolved(t *testing.T) {
	c, _ := newTestCollector(t)

	c.Resolved(nil)
	c.Resolved(errors.ErrMissingDependency("id"))
	c.Resolved(stderrors.New("counted by the dispatch"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.resolutions.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues(errors.CodeMissingDependency)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.errors.WithLabelValues(CodeExternal)))
}

func TestCollector_Built(t *testing.T) {
	c, _ := newTestCollector(t)

	c.Built(time.Millisecond, 3, nil)
	assert.Equal(t, 3.0, testutil.ToFloat64(c.singletons))

	c.Built(time.Millisecond, 0, errors.ErrCyclicDependencies("a", "b"))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.singletons))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues(errors.CodeCyclicDependencies)))
}

func TestCollector_Exposition(t *testing.T) {
	c, reg := newTestCollector(t)
	c.Registered("SINGLETON")

	expected := `
# HELP tether_registrations_total Dependencies registered, by lifecycle.
# TYPE tether_registrations_total counter
tether_registrations_total{lifecycle="SINGLETON"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "tether_registrations_total")
	assert.NoError(t, err)
}

func TestNewCollector_CustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "app")
	require.NoError(t, err)
	c.Resolved(nil)

	count, err := testutil.GatherAndCount(reg, "app_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, "")
	require.NoError(t, err)

	_, err = NewCollector(reg, "")
	assert.Error(t, err)
}

func TestNoOpRecorder(t *testing.T) {
	r := NewNoOpRecorder()

	assert.NotPanics(t, func() {
		r.Registered("SINGLETON")
		r.Dispatched("SINGLETON", time.Second, nil)
		r.Resolved(stderrors.New("ignored"))
		r.Built(time.Second, 1, nil)
	})
}
