package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a printf-style wrapper around a zap sugared logger
type Logger struct {
	sugar     *zap.SugaredLogger
	component string
}

var root = mustBuild("info", "console")

// Setup rebuilds the root zap logger with the given level and format ("console" or "json")
// and resets the global logger. Loggers created before Setup keep the previous configuration.
func Setup(level, format string) error {
	l, err := build(level, format)
	if err != nil {
		return err
	}
	root = l
	Global = New("")
	return nil
}

// New creates a new logger tagged with the given component name
func New(component string) *Logger {
	return FromZap(root, component)
}

// FromZap wraps an existing zap logger
func FromZap(l *zap.Logger, component string) *Logger {
	if component != "" {
		l = l.With(zap.String("component", component))
	}
	return &Logger{
		sugar:     l.Sugar(),
		component: component,
	}
}

// With returns a child logger carrying an extra key/value pair
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		sugar:     l.sugar.With(key, value),
		component: l.component,
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Zap exposes the underlying zap logger for libraries that take one
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

// Global logger instance for application-wide logging
var Global = New("")

// SetGlobal sets the global logger
func SetGlobal(logger *Logger) {
	Global = logger
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func build(level, format string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableStacktrace = true

	return cfg.Build()
}

func mustBuild(level, format string) *zap.Logger {
	l, err := build(level, format)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
