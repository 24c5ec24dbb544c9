package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to add tag/package/file filtering.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// allowed applies the enable/disable pair for one dimension. Disabled wins;
// a non-empty enabled set admits only its members.
func allowed(kind, value string, enabled, disabled map[string]struct{}) bool {
	value = strings.ToLower(value)
	if _, found := disabled[value]; found {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: disabled %s '%s'\n", kind, value)
		}
		return false
	}
	if enabled == nil {
		return true
	}
	if _, found := enabled[value]; !found {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: %s '%s' not in enabled list\n", kind, value)
		}
		return false
	}
	return true
}

// recordSource returns the package directory and file name a record was logged from.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

func recordTag(r slog.Record) (tag string, ok bool) {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag, ok = a.Value.String(), true
			return false
		}
		return true
	})
	return tag, ok
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if pkg, file, ok := recordSource(r); ok {
		if !allowed("package", pkg, h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
			return nil
		}
		if !allowed("file", file, h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
			return nil
		}
	}

	if tag, ok := recordTag(r); ok {
		if !allowed("tag", tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet) {
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Filtering for specific tags drops untagged messages.
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
