// Package logx is the process-wide leveled logger. It wraps zap so call sites
// stay short: logx.Infof("listening on %s", addr).
package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps "debug", "info", "warn" and "error". Anything else is info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	global = newZap("json", level)
)

func newZap(format string, lvl zap.AtomicLevel) *zap.SugaredLogger {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// SetLevel changes the minimum level of the global logger.
func SetLevel(l Level) {
	level.SetLevel(l.zapLevel())
}

// Configure rebuilds the global logger with the given level and format
// ("json" or "console").
func Configure(lvl, format string) {
	level.SetLevel(ParseLevel(lvl).zapLevel())
	l := newZap(format, level)

	mu.Lock()
	global = l
	mu.Unlock()
}

// Use replaces the global logger. Tests pass a zaptest logger here.
func Use(l *zap.Logger) {
	mu.Lock()
	global = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() {
	_ = get().Sync()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Debug(args ...any)                 { get().Debug(args...) }
func Debugf(format string, args ...any) { get().Debugf(format, args...) }
func Info(args ...any)                  { get().Info(args...) }
func Infof(format string, args ...any)  { get().Infof(format, args...) }
func Warn(args ...any)                  { get().Warn(args...) }
func Warnf(format string, args ...any)  { get().Warnf(format, args...) }
func Error(args ...any)                 { get().Error(args...) }
func Errorf(format string, args ...any) { get().Errorf(format, args...) }
func Fatalf(format string, args ...any) { get().Fatalf(format, args...) }

// Logger is a scoped logger carrying structured fields.
type Logger struct {
	s *zap.SugaredLogger
}

// With returns a logger that adds the key/value pairs to every entry.
func With(keysAndValues ...any) *Logger {
	return &Logger{s: get().With(keysAndValues...)}
}

func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{s: l.s.With(keysAndValues...)}
}

func (l *Logger) Debug(msg string) { l.s.Debug(msg) }
func (l *Logger) Info(msg string)  { l.s.Info(msg) }
func (l *Logger) Warn(msg string)  { l.s.Warn(msg) }
func (l *Logger) Error(msg string) { l.s.Error(msg) }
