// Package loggertest provides a logger that records entries for assertions.
package loggertest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xraph/tether/internal/logger"
)

// New creates a logger recording every entry at or above level.
func New(level logger.LogLevel) (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logger.Wrap(zap.New(core)), logs
}
