package diagnostics

import (
	"fmt"
	"strings"

	"github.com/xraph/tether/internal/errors"
)

// TokenLookup maps a dependency identifier back to its tokens.
type TokenLookup interface {
	Tokens(id string) ([]any, error)
}

// TokenTypes classifies a token.
type TokenTypes interface {
	TokenType(token any) string
}

// TokenNames renders a token of a given kind.
type TokenNames interface {
	Name(token any, kind string) string
}

// DescribedError is a structural container error whose message names the
// tokens behind the offending dependency identifiers.
type DescribedError struct {
	message string
	names   []string
	err     *errors.ContainerError
}

func (e *DescribedError) Error() string { return e.message }

// Unwrap exposes the structural error so errors.Is matches its sentinel.
func (e *DescribedError) Unwrap() error { return e.err }

// Names returns the rendered name of every offending dependency.
func (e *DescribedError) Names() []string {
	return append([]string(nil), e.names...)
}

// ExceptionHandler turns structural errors into human readable ones.
type ExceptionHandler struct {
	tokens TokenLookup
	types  TokenTypes
	names  TokenNames
}

// NewExceptionHandler creates a handler over the token store and resolvers.
func NewExceptionHandler(tokens TokenLookup, types TokenTypes, names TokenNames) *ExceptionHandler {
	return &ExceptionHandler{tokens: tokens, types: types, names: names}
}

// Handle describes err when it carries a structural container error and
// returns every other error untouched.
func (h *ExceptionHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	var described *DescribedError
	if errors.As(err, &described) {
		return err
	}

	ce, ok := errors.AsContainerError(err)
	if !ok {
		return err
	}

	names := make([]string, len(ce.DependencyIDs))
	for i, id := range ce.DependencyIDs {
		names[i] = h.Describe(id)
	}

	return &DescribedError{
		message: fmt.Sprintf("Error: %s - Caused by: [%s]", ce.Message, strings.Join(names, ", ")),
		names:   names,
		err:     ce,
	}
}

// Describe renders a dependency identifier as "(name - qualifier)".
func (h *ExceptionHandler) Describe(id string) string {
	names, err := h.TokenNames(id)
	if err != nil {
		return fmt.Sprintf("(UNKNOWN DEPENDENCY ID: %s)", id)
	}
	return "(" + strings.Join(names, " - ") + ")"
}

// TokenNames returns the name of every token behind id.
func (h *ExceptionHandler) TokenNames(id string) ([]string, error) {
	tokens, err := h.tokens.Tokens(id)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = h.names.Name(tok, h.types.TokenType(tok))
	}
	return names, nil
}
