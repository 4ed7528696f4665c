package tether

import (
	"reflect"

	"github.com/xraph/tether/internal/di"
	"github.com/xraph/tether/internal/token"
)

// Symbol is a unique token with a description. Two symbols with the same
// description are different tokens.
type Symbol = token.Symbol

// NewSymbol creates a unique symbol token.
func NewSymbol(description string) *Symbol {
	return token.NewSymbol(description)
}

// TypeOf returns the token for type T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// MappedDependency declares a constructor parameter whose token is
// qualified.
type MappedDependency = di.MappedDependency

// Mapped declares a qualified token for Declarations.Inject.
func Mapped(token, qualifier any) MappedDependency {
	return MappedDependency{Token: token, Qualifier: qualifier}
}

// Built-in token kinds reported by the token type checkers.
const (
	TokenKindType      = token.KindType
	TokenKindInterface = token.KindInterface
	TokenKindString    = token.KindString
	TokenKindSymbol    = token.KindSymbol
	TokenKindUnknown   = token.KindUnknown
)

type (
	// TokenChecker reports whether a token belongs to a kind.
	TokenChecker = token.Checker
	// TokenCheckerFunc adapts a function to TokenChecker.
	TokenCheckerFunc = token.CheckerFunc
	// TokenNamer renders tokens of one kind in error messages.
	TokenNamer = token.Namer
	// TokenNamerFunc adapts a function to TokenNamer.
	TokenNamerFunc = token.NamerFunc
)
