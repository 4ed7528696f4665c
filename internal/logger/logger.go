package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger represents the logging interface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)

	With(fields ...Field) Logger
	Named(name string) Logger
	Sugar() SugarLogger
	Sync() error
}

// SugarLogger provides a more flexible API.
type SugarLogger = *zap.SugaredLogger

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	Encoding    string `yaml:"encoding"`
}

type zapLogger struct {
	zap *zap.Logger
}

// NewLogger creates a new logger with the given configuration.
// An unparsable level falls back to info.
func NewLogger(config LoggingConfig) Logger {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if config.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if config.Encoding != "" {
		zc.Encoding = config.Encoding
	}

	l, err := zc.Build()
	if err != nil {
		return NewNoopLogger()
	}
	return Wrap(l)
}

// NewDevelopmentLogger creates a development logger.
func NewDevelopmentLogger() Logger {
	return NewLogger(LoggingConfig{Level: "debug", Development: true, Encoding: "console"})
}

// NewProductionLogger creates a production logger.
func NewProductionLogger() Logger {
	return NewLogger(LoggingConfig{Level: "info", Encoding: "json"})
}

// NewNoopLogger creates a logger that does nothing.
func NewNoopLogger() Logger {
	return Wrap(zap.NewNop())
}

// Wrap adapts an existing zap logger.
func Wrap(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{zap: l}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }

func (l *zapLogger) Debugf(template string, args ...any) { l.zap.Sugar().Debugf(template, args...) }
func (l *zapLogger) Infof(template string, args ...any)  { l.zap.Sugar().Infof(template, args...) }
func (l *zapLogger) Warnf(template string, args ...any)  { l.zap.Sugar().Warnf(template, args...) }
func (l *zapLogger) Errorf(template string, args ...any) { l.zap.Sugar().Errorf(template, args...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{zap: l.zap.With(fields...)}
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{zap: l.zap.Named(name)}
}

func (l *zapLogger) Sugar() SugarLogger {
	return l.zap.Sugar()
}

func (l *zapLogger) Sync() error {
	return l.zap.Sync()
}
