// Package logging routes go-reportgen diagnostics through log/slog without
// forcing a logger on library callers. Rendering stays silent by default;
// hosts opt in with SetLogger.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

// SetLogger configures the package-level logger. Pass nil to silence all
// output again. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		current.Store(discard())
		return
	}
	current.Store(l)
}

// Logger returns the configured logger, or a discard logger when none has
// been set. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	l := discard()
	current.Store(l)
	return l
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
