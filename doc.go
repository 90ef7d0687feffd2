// Package claudesdk is a Go client for driving the Claude Agent CLI as a
// subprocess: it launches the CLI, speaks its newline-delimited JSON control
// protocol over stdin/stdout, and exposes the result as idiomatic Go types
// and iterators.
//
// # One-shot queries
//
// Query runs a single prompt to completion and streams the resulting
// messages back through a Go 1.23 iterator:
//
//	ctx := context.Background()
//	for msg, err := range claudesdk.Query(ctx, "What is 2+2?",
//	    claudesdk.WithPermissionMode("acceptEdits"),
//	    claudesdk.WithMaxTurns(1),
//	) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    switch m := msg.(type) {
//	    case *claudesdk.AssistantMessage:
//	        for _, block := range m.Content {
//	            if text, ok := block.(*claudesdk.TextBlock); ok {
//	                fmt.Println(text.Text)
//	            }
//	        }
//	    case *claudesdk.ResultMessage:
//	        fmt.Printf("Completed in %dms\n", m.DurationMs)
//	    }
//	}
//
// # Interactive, multi-turn sessions
//
// NewClient (or the WithClient helper, for automatic Close()) gives
// bidirectional control over a single CLI process across many turns:
// send a Query, drain ReceiveResponse until the turn's ResultMessage, then
// send the next one on the same client. A client also exposes live control
// requests that don't require starting a new turn: SetModel, SetAgent,
// SetPermissionMode, Interrupt, and GetMCPStatus.
//
//	err := claudesdk.WithClient(ctx, func(c claudesdk.Client) error {
//	    if err := c.Query(ctx, "Hello Claude"); err != nil {
//	        return err
//	    }
//
//	    for msg, err := range c.ReceiveResponse(ctx) {
//	        if err != nil {
//	            return err
//	        }
//	        // process message...
//	    }
//
//	    return nil
//	}, claudesdk.WithPermissionMode("acceptEdits"))
//
// # Multiple agents and model suggestions
//
// WithAgents registers named agent definitions up front; SetAgent/GetAgent
// switch the active one mid-session. SetModel validates its argument against
// a small built-in model catalog and returns an *InvalidModelError for any
// name that is not in it, carrying up to three edit-distance suggestions.
//
// # Partial streaming events
//
// With WithIncludePartialMessages, ReceiveMessages also surfaces
// StreamEvent messages carrying incremental content-block deltas as the CLI
// emits them, ahead of the turn's final AssistantMessage.
//
// # In-process MCP tools
//
// WithSDKTools/WithMCPServers let a host register Go functions as MCP tools
// that run in the same process as the caller, without a separate MCP
// server subprocess.
//
// # Logging
//
// WithLogger attaches a *slog.Logger; every subsystem (transport, protocol
// controller, client) logs through a "component"-scoped child of it.
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	for msg, err := range claudesdk.Query(ctx, "Hello Claude", claudesdk.WithLogger(logger)) {
//	    // ...
//	}
//
// # Error handling
//
// Typed errors distinguish failure categories: *CLINotFoundError (binary
// missing), *ProcessError (nonzero exit), *CLIJSONDecodeError/*MessageParseError
// (malformed output), *InvalidModelError, *AgentNotFoundError. Use
// errors.AsType to recover the concrete type:
//
//	for msg, err := range claudesdk.Query(ctx, prompt, claudesdk.WithPermissionMode("acceptEdits")) {
//	    if err != nil {
//	        if cliErr, ok := errors.AsType[*claudesdk.CLINotFoundError](err); ok {
//	            log.Fatalf("Claude CLI not installed, searched: %v", cliErr.SearchedPaths)
//	        }
//
//	        if procErr, ok := errors.AsType[*claudesdk.ProcessError](err); ok {
//	            log.Fatalf("CLI process failed with exit code %d: %s", procErr.ExitCode, procErr.Stderr)
//	        }
//
//	        log.Fatal(err)
//	    }
//	}
//
// # Requirements
//
// The Claude Agent CLI must be installed and discoverable on PATH, or
// pointed to explicitly with WithCliPath.
package claudesdk
