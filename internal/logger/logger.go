// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	logOutput     io.Writer = io.Discard

	// debugFilter prints filter decisions to stderr. Toggled by the -debug-log flag.
	debugFilter bool
)

// Init (re)configures the package logger. A nil output discards everything.
func Init(cfg Config, output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	cfg.process()
	logLevel.Set(cfg.level)

	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg)

	mu.Lock()
	logOutput = output
	defaultLogger = slog.New(handler)
	mu.Unlock()

	// PC=0: no source for the init record.
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
	r.AddAttrs(slog.String("level", cfg.level.String()))
	_ = handler.Handle(context.Background(), r)
}

// SetDebugFilter toggles filter diagnostics on stderr.
func SetDebugFilter(enabled bool) {
	debugFilter = enabled
}

func current() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		logLevel.Set(slog.LevelInfo)
		defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
	}
	return defaultLogger
}

// logAtLevel builds the record itself so the source points at the caller of
// Debugf/Infof/..., not at this package.
func logAtLevel(level slog.Level, tag string, format string, args ...any) {
	l := current()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// DebugTagf logs a debug message carrying a tag attribute used by the tag filters.
func DebugTagf(tag string, format string, args ...any) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...any) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...any) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...any) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// Get returns the configured slog logger.
func Get() *slog.Logger {
	return current()
}

// Output returns the writer passed to the last Init call.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return logOutput
}
