package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structural container errors
const (
	CodeMissingDependency         = "MISSING_DEPENDENCY"
	CodeMissingToken              = "MISSING_TOKEN"
	CodeCyclicDependencies        = "CYCLIC_DEPENDENCIES"
	CodeInvalidLifecycle          = "INVALID_LIFECYCLE"
	CodeCanNotConstructDependency = "CAN_NOT_CONSTRUCT_DEPENDENCY"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// Configuration errors raised by the registration and retrieval surface.
// They are never carried as ContainerError because they name no dependency.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingToken         = fmt.Errorf("%w, missing dependency token", ErrInvalidConfiguration)
	ErrMissingQualifier     = fmt.Errorf("%w, missing qualifier token", ErrInvalidConfiguration)
	ErrMissingFactory       = fmt.Errorf("%w, missing factory function", ErrInvalidConfiguration)
	ErrMissingInstance      = fmt.Errorf("%w, missing instance", ErrInvalidConfiguration)
	ErrMissingConstructor   = fmt.Errorf("%w, missing constructor", ErrInvalidConfiguration)
	ErrMissingLifecycle     = fmt.Errorf("%w, missing lifecycle", ErrInvalidConfiguration)
	ErrInvalidConstructor   = fmt.Errorf("%w, constructor must be a function returning a value and an optional error", ErrInvalidConfiguration)
	ErrInvalidToken         = fmt.Errorf("%w, token must be comparable", ErrInvalidConfiguration)
	ErrInvalidArgumentIndex = fmt.Errorf("%w, invalid constructor argument index", ErrInvalidConfiguration)

	ErrContainerNotBuilt = errors.New("dependency container not built, call Build before retrieving dependencies")
	ErrTypeMismatch      = errors.New("dependency type mismatch")
)

// =============================================================================
// CONTAINER ERROR (STRUCTURED ERROR)
// =============================================================================

// ContainerError is a structural error raised by the dependency graph engine.
// It always carries the identifiers of the offending dependencies.
type ContainerError struct {
	Code          string
	Message       string
	DependencyIDs []string
	Cause         error
	Timestamp     time.Time
	Context       map[string]any
}

func (e *ContainerError) Error() string {
	msg := e.Message
	if len(e.DependencyIDs) > 0 {
		msg += " [" + strings.Join(e.DependencyIDs, ", ") + "]"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ContainerError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is interface for ContainerError.
// Compares by error code, allowing matching against sentinel errors.
func (e *ContainerError) Is(target error) bool {
	t, ok := target.(*ContainerError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds context to the error
func (e *ContainerError) WithContext(key string, value any) *ContainerError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newContainerError(code, message string, ids []string) *ContainerError {
	return &ContainerError{
		Code:          code,
		Message:       message,
		DependencyIDs: ids,
		Timestamp:     time.Now(),
		Context:       make(map[string]any),
	}
}

// ErrMissingDependency is raised when an identifier has no registry entry.
func ErrMissingDependency(ids ...string) *ContainerError {
	return newContainerError(CodeMissingDependency, "Missing dependency.", ids)
}

// ErrMissingDependencyToken is raised when an identifier cannot be mapped back to its tokens.
func ErrMissingDependencyToken(ids ...string) *ContainerError {
	return newContainerError(CodeMissingToken, "Missing dependency token.", ids)
}

// ErrCyclicDependencies is raised when the construction order cannot cover every entry.
func ErrCyclicDependencies(ids ...string) *ContainerError {
	return newContainerError(CodeCyclicDependencies, "Cyclic dependencies error.", ids)
}

// ErrInvalidLifecycle is raised when an entry names a lifecycle without a strategy.
func ErrInvalidLifecycle(lifecycle string, ids ...string) *ContainerError {
	return newContainerError(CodeInvalidLifecycle, "Invalid lifecycle: "+lifecycle, ids).
		WithContext("lifecycle", lifecycle)
}

// ErrCanNotConstructDependency is raised for a descriptor with no instance, factory or constructor.
func ErrCanNotConstructDependency(ids ...string) *ContainerError {
	return newContainerError(CodeCanNotConstructDependency, "Can not construct dependency.", ids)
}

// =============================================================================
// SENTINEL ERRORS (for use with Is)
// =============================================================================

var (
	// ErrMissingDependencySentinel matches every missing dependency error
	ErrMissingDependencySentinel = &ContainerError{Code: CodeMissingDependency}

	// ErrMissingTokenSentinel matches every missing token error
	ErrMissingTokenSentinel = &ContainerError{Code: CodeMissingToken}

	// ErrCyclicDependenciesSentinel matches every cyclic dependencies error
	ErrCyclicDependenciesSentinel = &ContainerError{Code: CodeCyclicDependencies}

	// ErrInvalidLifecycleSentinel matches every invalid lifecycle error
	ErrInvalidLifecycleSentinel = &ContainerError{Code: CodeInvalidLifecycle}

	// ErrCanNotConstructDependencySentinel matches every unconstructable dependency error
	ErrCanNotConstructDependencySentinel = &ContainerError{Code: CodeCanNotConstructDependency}
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// AsContainerError extracts the structural error from err's chain, if any.
func AsContainerError(err error) (*ContainerError, bool) {
	var ce *ContainerError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Code returns the structural error code carried by err, or "" when err is not structural.
func Code(err error) string {
	if ce, ok := AsContainerError(err); ok {
		return ce.Code
	}
	return ""
}

// IsMissingDependency checks if the error is a missing dependency error
func IsMissingDependency(err error) bool {
	return Is(err, ErrMissingDependencySentinel)
}

// IsMissingToken checks if the error is a missing token error
func IsMissingToken(err error) bool {
	return Is(err, ErrMissingTokenSentinel)
}

// IsCyclicDependencies checks if the error is a cyclic dependencies error
func IsCyclicDependencies(err error) bool {
	return Is(err, ErrCyclicDependenciesSentinel)
}

// IsInvalidLifecycle checks if the error is an invalid lifecycle error
func IsInvalidLifecycle(err error) bool {
	return Is(err, ErrInvalidLifecycleSentinel)
}

// IsCanNotConstructDependency checks if the error is an unconstructable dependency error
func IsCanNotConstructDependency(err error) bool {
	return Is(err, ErrCanNotConstructDependencySentinel)
}
