package diagnostics

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/tether/internal/di"
	"github.com/xraph/tether/internal/errors"
	"github.com/xraph/tether/internal/token"
)

type repository interface {
	Find(id string) string
}

type postgres struct{}

func newHandler() (*ExceptionHandler, *token.Store) {
	store := token.NewStore()
	types := token.NewTypeResolver()
	types.SetDefaultCheckers()
	names := token.NewNameResolver()
	names.SetDefaultStrategies()
	return NewExceptionHandler(store, types, names), store
}

func TestExceptionHandler_Describe(t *testing.T) {
	h, store := newHandler()

	tests := []struct {
		name   string
		tokens []any
		want   string
	}{
		{"string", []any{"config"}, "(config)"},
		{"empty string", []any{""}, "(Empty String)"},
		{"symbol", []any{token.NewSymbol("cache")}, "(cache)"},
		{"type", []any{reflect.TypeFor[*postgres]()}, "(*diagnostics.postgres)"},
		{"interface", []any{reflect.TypeFor[repository]()}, "(repository)"},
		{"qualified", []any{reflect.TypeFor[repository](), "primary"}, "(repository - primary)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := store.RetrieveOrCreateID(tt.tokens...)
			assert.Equal(t, tt.want, h.Describe(id))
		})
	}
}

func TestExceptionHandler_Describe_Unknown(t *testing.T) {
	h, _ := newHandler()

	assert.Equal(t, "(UNKNOWN DEPENDENCY ID: nope)", h.Describe("nope"))
}

func TestExceptionHandler_Handle(t *testing.T) {
	h, store := newHandler()
	a := store.RetrieveOrCreateID("a")
	b := store.RetrieveOrCreateID("b", "primary")

	err := h.Handle(errors.ErrCyclicDependencies(a, b))
	require.Error(t, err)

	assert.Equal(t, "Error: Cyclic dependencies error. - Caused by: [(a), (b - primary)]", err.Error())
	assert.ErrorIs(t, err, errors.ErrCyclicDependenciesSentinel)
	assert.True(t, errors.IsCyclicDependencies(err))

	var described *DescribedError
	require.True(t, errors.As(err, &described))
	assert.Equal(t, []string{"(a)", "(b - primary)"}, described.Names())
}

func TestExceptionHandler_Handle_MissingDependency(t *testing.T) {
	h, _ := newHandler()

	err := h.Handle(errors.ErrMissingDependency("ghost"))
	assert.Equal(t, "Error: Missing dependency. - Caused by: [(UNKNOWN DEPENDENCY ID: ghost)]", err.Error())
	assert.ErrorIs(t, err, errors.ErrMissingDependencySentinel)
}

func TestExceptionHandler_Handle_PassThrough(t *testing.T) {
	h, _ := newHandler()
	boom := stderrors.New("boom")

	assert.Nil(t, h.Handle(nil))
	assert.Same(t, boom, h.Handle(boom))
	assert.ErrorIs(t, h.Handle(errors.ErrMissingFactory), errors.ErrInvalidConfiguration)
}

func TestExceptionHandler_Handle_Idempotent(t *testing.T) {
	h, store := newHandler()

	first := h.Handle(errors.ErrCanNotConstructDependency(store.RetrieveOrCreateID("x")))
	second := h.Handle(first)

	assert.Same(t, first, second)
}

func TestNewSnapshot(t *testing.T) {
	h, store := newHandler()
	graph := di.NewDependencyGraph()

	configID := store.RetrieveOrCreateID("config")
	serviceID := store.RetrieveOrCreateID("service")

	graph.Add(di.NewEntry(configID, di.Singleton, di.NewDescriptor(di.WithInstance("cfg"))))
	graph.Add(di.NewEntry(serviceID, di.Transient, di.NewDescriptor(
		di.WithFactory(func() (any, error) { return "svc", nil }),
		di.WithConstructor(nil, []string{configID}),
	)))

	snap := NewSnapshot(graph, h, true)

	assert.True(t, snap.Built)
	assert.Equal(t, []string{"config", "service"}, snap.Order)
	assert.Empty(t, snap.OrderError)
	require.Len(t, snap.Entries, 2)

	cfg, ok := snap.Entry("config")
	require.True(t, ok)
	assert.Equal(t, EntrySnapshot{
		ID:           configID,
		Name:         "config",
		Lifecycle:    di.Singleton,
		Mode:         "instance",
		Dependencies: []string{},
		Materialized: true,
	}, cfg)

	svc, ok := snap.Entry("service")
	require.True(t, ok)
	assert.Equal(t, "factory", svc.Mode)
	assert.Equal(t, []string{"config"}, svc.Dependencies)
	assert.False(t, svc.Materialized)

	_, ok = snap.Entry("missing")
	assert.False(t, ok)
}

func TestNewSnapshot_Cycle(t *testing.T) {
	h, store := newHandler()
	graph := di.NewDependencyGraph()

	a := store.RetrieveOrCreateID("a")
	b := store.RetrieveOrCreateID("b")
	graph.Add(di.NewEntry(a, di.Singleton, di.NewDescriptor(di.WithConstructor(nil, []string{b}))))
	graph.Add(di.NewEntry(b, di.Singleton, di.NewDescriptor(di.WithConstructor(nil, []string{a}))))

	snap := NewSnapshot(graph, h, false)

	assert.Nil(t, snap.Order)
	assert.Equal(t, "Error: Cyclic dependencies error. - Caused by: [(a), (b)]", snap.OrderError)
}

func TestSnapshot_JSON(t *testing.T) {
	snap := Snapshot{
		Built: true,
		Entries: []EntrySnapshot{{
			ID:           "id-1",
			Name:         "config",
			Lifecycle:    di.Singleton,
			Mode:         "instance",
			Dependencies: []string{},
			Materialized: true,
		}},
		Order: []string{"config"},
	}

	data, err := snap.JSON()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"built": true,
		"entries": [{
			"id": "id-1",
			"name": "config",
			"lifecycle": "SINGLETON",
			"mode": "instance",
			"dependencies": [],
			"materialized": true
		}],
		"order": ["config"]
	}`, string(data))
}
