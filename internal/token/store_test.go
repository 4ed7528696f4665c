package token

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/tether/internal/errors"
)

type mockService struct{}

var componentPattern = regexp.MustCompile(`^[0-9a-f-]{36}$`)

func TestStore_RetrieveOrCreateID_SingleToken(t *testing.T) {
	s := NewStore()

	id := s.RetrieveOrCreateID(reflect.TypeFor[*mockService]())

	assert.Regexp(t, componentPattern, id)
	assert.NotContains(t, id, Separator)
}

func TestStore_RetrieveOrCreateID_Idempotent(t *testing.T) {
	s := NewStore()
	tok := reflect.TypeFor[*mockService]()

	first := s.RetrieveOrCreateID(tok, "primary")
	second := s.RetrieveOrCreateID(tok, "primary")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, s.Len())
}

func TestStore_RetrieveOrCreateID_Qualified(t *testing.T) {
	s := NewStore()
	tok := reflect.TypeFor[*mockService]()

	plain := s.RetrieveOrCreateID(tok)
	qualified := s.RetrieveOrCreateID(tok, "primary")
	other := s.RetrieveOrCreateID(tok, "secondary")

	parts := strings.Split(qualified, Separator)
	require.Len(t, parts, 2)
	assert.Equal(t, plain, parts[0], "primary component is reused")
	assert.NotEqual(t, qualified, other)
	assert.NotEqual(t, plain, qualified)
}

func TestStore_RetrieveOrCreateID_SkipsNil(t *testing.T) {
	s := NewStore()

	withNil := s.RetrieveOrCreateID("db", nil)
	plain := s.RetrieveOrCreateID("db")

	assert.Equal(t, plain, withNil)
	assert.Empty(t, s.RetrieveOrCreateID(nil))
}

func TestStore_RetrieveOrCreateID_DistinctTokens(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)

	tokens := []any{
		"db",
		"cache",
		reflect.TypeFor[*mockService](),
		reflect.TypeFor[mockService](),
		NewSymbol("db"),
		NewSymbol("db"),
		42,
	}

	for _, tok := range tokens {
		id := s.RetrieveOrCreateID(tok)
		assert.False(t, seen[id], "identifier reused for %v", tok)
		seen[id] = true
	}
}

func TestStore_Tokens(t *testing.T) {
	s := NewStore()
	tok := reflect.TypeFor[*mockService]()

	id := s.RetrieveOrCreateID(tok, "qualifier1")

	tokens, err := s.Tokens(id)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, tok, tokens[0])
	assert.Equal(t, "qualifier1", tokens[1])
}

func TestStore_Tokens_OnlyPrimary(t *testing.T) {
	s := NewStore()
	tok := reflect.TypeFor[*mockService]()

	tokens, err := s.Tokens(s.RetrieveOrCreateID(tok, nil))
	require.NoError(t, err)
	assert.Equal(t, []any{tok}, tokens)
}

func TestStore_Tokens_Missing(t *testing.T) {
	s := NewStore()
	known := s.RetrieveOrCreateID("db")

	tests := []string{"unknown_id", "", known + Separator + "unknown"}
	for _, id := range tests {
		_, err := s.Tokens(id)
		assert.True(t, errors.IsMissingToken(err), "id %q", id)

		ce, ok := errors.AsContainerError(err)
		require.True(t, ok)
		assert.Equal(t, []string{id}, ce.DependencyIDs)
	}
}

func TestStore_ConcurrentMinting(t *testing.T) {
	s := NewStore()
	ids := make([]string, 32)

	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = s.RetrieveOrCreateID("shared", "qualifier")
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 2, s.Len())
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(nil))
	assert.True(t, Comparable("x"))
	assert.True(t, Comparable(NewSymbol("x")))
	assert.True(t, Comparable(reflect.TypeFor[int]()))
	assert.False(t, Comparable([]string{"x"}))
	assert.False(t, Comparable(map[string]int{}))
	assert.False(t, Comparable(func() {}))
}
