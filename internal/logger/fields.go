package logger

import (
	"go.uber.org/zap"
)

// Field represents a structured log field.
type Field = zap.Field

// Field constructors.
var (
	// String creates a string field.
	String = zap.String
	// Strings creates a string slice field.
	Strings = zap.Strings
	// Int creates an int field.
	Int = zap.Int
	// Bool creates a bool field.
	Bool = zap.Bool
	// Duration creates a duration field.
	Duration = zap.Duration
	// Error creates an error field.
	Error = zap.Error
	// Any creates a field from an arbitrary value.
	Any = zap.Any
)

// Container specific fields.

// DependencyID creates a dependency identifier field.
func DependencyID(id string) Field {
	return zap.String("dependency_id", id)
}

// DependencyIDs creates a field listing dependency identifiers.
func DependencyIDs(ids []string) Field {
	return zap.Strings("dependency_ids", ids)
}

// Lifecycle creates a lifecycle policy field.
func Lifecycle(name string) Field {
	return zap.String("lifecycle", name)
}
