package claudesdk

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output.
// Use this when you want silent operation with no logging overhead.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// resolveLogger returns l, or NopLogger() if l is nil. Every entry point
// that accepts a *slog.Logger through ClaudeAgentOptions funnels through
// here so "no logger configured" means exactly one thing across the
// package.
func resolveLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return NopLogger()
	}

	return l
}
