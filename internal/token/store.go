package token

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/xraph/tether/internal/errors"
)

// Separator joins the per-token components of a dependency identifier.
const Separator = "_"

// registry binds a token to its randomly generated identifier component.
type registry struct {
	id    string
	token any
}

// Store assigns and recalls stable identifiers for tokens and token pairs.
// Tokens must be comparable; nil tokens are skipped.
type Store struct {
	byToken map[any]*registry
	byID    map[string]*registry
	mu      sync.RWMutex
}

// NewStore creates an empty token store.
func NewStore() *Store {
	return &Store{
		byToken: make(map[any]*registry),
		byID:    make(map[string]*registry),
	}
}

// RetrieveOrCreateID returns the dependency identifier for tokens, minting a
// component for every token seen for the first time. Components are joined
// in input order.
func (s *Store) RetrieveOrCreateID(tokens ...any) string {
	ids := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if tok == nil {
			continue
		}
		ids = append(ids, s.retrieveOrCreate(tok).id)
	}

	return strings.Join(ids, Separator)
}

func (s *Store) retrieveOrCreate(tok any) *registry {
	s.mu.RLock()
	reg, ok := s.byToken[tok]
	s.mu.RUnlock()
	if ok {
		return reg
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if reg, ok := s.byToken[tok]; ok {
		return reg
	}

	reg = &registry{id: uuid.NewString(), token: tok}
	s.byToken[tok] = reg
	s.byID[reg.id] = reg

	return reg
}

// Tokens maps a dependency identifier back to the tokens it was built from.
// It fails with a missing token error when any component is unknown.
func (s *Store) Tokens(id string) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	components := strings.Split(id, Separator)
	tokens := make([]any, 0, len(components))

	for _, component := range components {
		reg, ok := s.byID[component]
		if !ok {
			return nil, errors.ErrMissingDependencyToken(id)
		}
		tokens = append(tokens, reg.token)
	}

	return tokens, nil
}

// Len returns the number of distinct tokens seen.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}
