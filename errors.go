package claudesdk

import "github.com/nshkrdotcom/claude-agent-sdk-sub002/internal/errors"

// Re-exported error types. Every error type a Client or Query can hand back
// to a caller needs a public name here, or callers can't errors.AsType it.

// CLINotFoundError indicates the Claude CLI binary was not found.
type CLINotFoundError = errors.CLINotFoundError

// CLIConnectionError indicates failure to connect to the CLI.
type CLIConnectionError = errors.CLIConnectionError

// ProcessError indicates the CLI process failed.
type ProcessError = errors.ProcessError

// MessageParseError indicates message parsing failed.
type MessageParseError = errors.MessageParseError

// CLIJSONDecodeError indicates JSON parsing failed for CLI output.
type CLIJSONDecodeError = errors.CLIJSONDecodeError

// InvalidModelError indicates SetModel was called with a model name the
// built-in catalog does not recognize.
type InvalidModelError = errors.InvalidModelError

// AgentNotFoundError indicates SetAgent was called with a name absent from
// the agents configured via WithAgents.
type AgentNotFoundError = errors.AgentNotFoundError

// NoAgentsConfiguredError indicates SetAgent was called but no agents were
// configured via WithAgents.
type NoAgentsConfiguredError = errors.NoAgentsConfiguredError

// ModelChangeInProgressError indicates SetModel was called while a previous
// SetModel request to the CLI was still in flight.
type ModelChangeInProgressError = errors.ModelChangeInProgressError

// CallbackCancelledError indicates a hook or permission callback was
// cancelled by the CLI before it returned.
type CallbackCancelledError = errors.CallbackCancelledError

// ClaudeSDKError is the base interface for all SDK errors.
type ClaudeSDKError = errors.ClaudeSDKError

// Re-exported sentinel errors.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.ErrClientNotConnected

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.ErrClientAlreadyConnected

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrRequestTimeout indicates a request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrOperationCancelled indicates an operation was cancelled via a
	// control_cancel_request.
	ErrOperationCancelled = errors.ErrOperationCancelled

	// ErrUnknownMessageType indicates a message type the SDK does not
	// recognize; callers should skip these rather than treat them as fatal.
	ErrUnknownMessageType = errors.ErrUnknownMessageType

	// ErrInvalidPermissionMode indicates SetPermissionMode was called with a
	// mode string that does not normalize to a recognized permission mode.
	ErrInvalidPermissionMode = errors.ErrInvalidPermissionMode
)
