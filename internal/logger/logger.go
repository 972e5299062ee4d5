// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
)

// Init builds the global logger for the given environment. "production"
// logs JSON at info level, "test" discards everything, and anything else logs
// to the console at debug level. A non-empty level such as "warn" overrides
// the environment's default.
func Init(env, level string) {
	var cfg zap.Config
	switch env {
	case "production":
		cfg = zap.NewProductionConfig()
	case "test":
		Replace(zap.NewNop())
		return
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	Replace(base)
}

// Replace swaps the global logger and returns a function restoring the
// previous one. Tests use it to capture log output.
func Replace(base *zap.Logger) (restore func()) {
	mu.Lock()
	prev := sugar
	sugar = base.Sugar()
	mu.Unlock()

	return func() {
		mu.Lock()
		sugar = prev
		mu.Unlock()
	}
}

// Get returns the global sugared logger, creating a development logger on
// first use when Init was never called.
func Get() *zap.SugaredLogger {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l != nil {
		return l
	}

	Init("development", "")
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Named returns a child of the global logger tagged with name.
func Named(name string) *zap.SugaredLogger {
	return Get().Named(name)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
