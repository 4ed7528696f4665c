package tether

import (
	"github.com/xraph/tether/internal/diagnostics"
	"github.com/xraph/tether/internal/errors"
)

// Re-export configuration errors.
var (
	ErrInvalidConfiguration = errors.ErrInvalidConfiguration
	ErrMissingToken         = errors.ErrMissingToken
	ErrMissingQualifier     = errors.ErrMissingQualifier
	ErrMissingFactory       = errors.ErrMissingFactory
	ErrMissingInstance      = errors.ErrMissingInstance
	ErrMissingConstructor   = errors.ErrMissingConstructor
	ErrMissingLifecycle     = errors.ErrMissingLifecycle
	ErrInvalidConstructor   = errors.ErrInvalidConstructor
	ErrInvalidToken         = errors.ErrInvalidToken
	ErrInvalidArgumentIndex = errors.ErrInvalidArgumentIndex
	ErrContainerNotBuilt    = errors.ErrContainerNotBuilt
	ErrTypeMismatch         = errors.ErrTypeMismatch
)

// Re-export sentinel errors for error comparison using errors.Is().
var (
	ErrMissingDependencySentinel         = errors.ErrMissingDependencySentinel
	ErrMissingTokenSentinel              = errors.ErrMissingTokenSentinel
	ErrCyclicDependenciesSentinel        = errors.ErrCyclicDependenciesSentinel
	ErrInvalidLifecycleSentinel          = errors.ErrInvalidLifecycleSentinel
	ErrCanNotConstructDependencySentinel = errors.ErrCanNotConstructDependencySentinel
)

// Re-export error helpers.
var (
	IsMissingDependency         = errors.IsMissingDependency
	IsMissingToken              = errors.IsMissingToken
	IsCyclicDependencies        = errors.IsCyclicDependencies
	IsInvalidLifecycle          = errors.IsInvalidLifecycle
	IsCanNotConstructDependency = errors.IsCanNotConstructDependency
)

type (
	// ContainerError is a structural error naming the offending dependency
	// identifiers.
	ContainerError = errors.ContainerError

	// DescribedError is what the container returns for structural errors: the
	// identifiers are rendered as token names and Unwrap yields the
	// ContainerError.
	DescribedError = diagnostics.DescribedError
)
