package tether

import "github.com/xraph/tether/internal/logger"

// Re-export logger interfaces
type (
	Logger        = logger.Logger
	SugarLogger   = logger.SugarLogger
	Field         = logger.Field
	LogLevel      = logger.LogLevel
	LoggingConfig = logger.LoggingConfig
)

// Re-export logger constants
const (
	LevelDebug = logger.LevelDebug
	LevelInfo  = logger.LevelInfo
	LevelWarn  = logger.LevelWarn
	LevelError = logger.LevelError
)

// Re-export logger constructors
var (
	NewLogger            = logger.NewLogger
	NewDevelopmentLogger = logger.NewDevelopmentLogger
	NewProductionLogger  = logger.NewProductionLogger
	NewNoopLogger        = logger.NewNoopLogger
)
