package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// ValidLogLevels are the level names accepted by NewLogger and SetLevel.
var ValidLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// root logger
var log atomic.Pointer[Logger]

// LoggingConfig is the subset of the logging configuration the logger needs.
// It is satisfied by *config.LoggingConfig.
type LoggingConfig interface {
	GetComponentLevel(component string) string
	GetDefaultLevel() string
	IsDevelopment() bool
}

// Logger wraps zap.SugaredLogger to provide a consistent logging interface across the project.
// It provides both structured logging (with fields) and printf-style logging methods.
// Child loggers created with WithComponent share the parent's atomic level.
type Logger struct {
	*zap.SugaredLogger

	atomicLevel zap.AtomicLevel
	component   string
}

// NewLogger creates a new logger with the specified configuration.
// level can be "debug", "info", "warn", "error"
// development mode enables stack traces and uses console encoder
func NewLogger(level string, development bool) (*Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
		atomicLevel:   config.Level,
	}, nil
}

// NewComponentLogger creates a logger tagged with the component name.
// It panics on an invalid level; levels are validated when the config is loaded.
func NewComponentLogger(component, level string, development bool) *Logger {
	l, err := NewLogger(level, development)
	if err != nil {
		panic(err)
	}

	return l.WithComponent(component)
}

// NewComponentLoggerFromConfig creates a component logger using the per-component level
// from cfg, falling back to info level in production mode when cfg is nil.
func NewComponentLoggerFromConfig(component string, cfg LoggingConfig) *Logger {
	if cfg == nil {
		return NewComponentLogger(component, defaultLevel, false)
	}

	level := cfg.GetComponentLevel(component)
	if level == "" {
		level = cfg.GetDefaultLevel()
	}
	if level == "" {
		level = defaultLevel
	}

	return NewComponentLogger(component, level, cfg.IsDevelopment())
}

// NewNopLogger creates a no-op logger that discards all logs.
// Useful for testing.
func NewNopLogger() *Logger {
	return &Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		atomicLevel:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
}

// WithComponent creates a child logger with a component name field.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		SugaredLogger: l.With("component", component),
		atomicLevel:   l.atomicLevel,
		component:     component,
	}
}

// GetComponent returns the component name, empty for the root logger.
func (l *Logger) GetComponent() string {
	return l.component
}

// GetLevel returns the current level name.
func (l *Logger) GetLevel() string {
	return l.atomicLevel.Level().String()
}

// SetLevel changes the level of this logger and every logger sharing its level.
func (l *Logger) SetLevel(level string) error {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	l.atomicLevel.SetLevel(zapLevel)
	return nil
}

// Close flushes any buffered log entries.
func (l *Logger) Close() error {
	return l.Sync()
}

func GetDefaultLogger() *Logger {
	l := log.Load()
	if l != nil {
		return l
	}
	// default level: debug
	zapLogger, err := NewLogger("debug", true)
	if err != nil {
		panic(err)
	}
	log.CompareAndSwap(nil, zapLogger)
	return log.Load()
}
