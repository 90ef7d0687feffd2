package claudesdk

import (
	"context"
	"log/slog"

	"github.com/nshkrdotcom/claude-agent-sdk-sub002/internal/config"
)

// Transport defines the interface for Claude CLI communication.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods (e.g., remote connections).
//
// The default implementation is CLITransport which spawns a subprocess.
// Custom transports can be injected via ClaudeAgentOptions.Transport.
type Transport = config.Transport

// LoggingTransport wraps a Transport and logs Start, Close and send errors
// through the given logger; EndInput and ReadMessages pass through to the
// wrapped transport without logging. It is
// useful when diagnosing a custom Transport implementation without
// instrumenting the implementation itself.
type LoggingTransport struct {
	Transport
	log *slog.Logger
}

// NewLoggingTransport wraps inner so its lifecycle events are logged through
// logger. A nil logger falls back to NopLogger.
func NewLoggingTransport(inner Transport, logger *slog.Logger) *LoggingTransport {
	return &LoggingTransport{Transport: inner, log: resolveLogger(logger).With("component", "transport")}
}

// Start logs before and after delegating to the wrapped transport.
func (t *LoggingTransport) Start(ctx context.Context) error {
	t.log.Debug("starting transport")
	err := t.Transport.Start(ctx)
	if err != nil {
		t.log.Warn("transport start failed", "error", err)
	}
	return err
}

// SendMessage logs send failures from the wrapped transport.
func (t *LoggingTransport) SendMessage(ctx context.Context, data []byte) error {
	err := t.Transport.SendMessage(ctx, data)
	if err != nil {
		t.log.Warn("transport send failed", "error", err)
	}
	return err
}

// Close logs before delegating to the wrapped transport's Close.
func (t *LoggingTransport) Close() error {
	t.log.Debug("closing transport")
	return t.Transport.Close()
}
