// Package mcp implements the host side of an in-process Model Context
// Protocol tool server.
//
// Callers register Go functions as tools via SDKServer.AddTool; the
// control protocol session exposes them to the CLI over tools/list and
// tools/call without ever touching a real MCP transport (stdio/SSE/HTTP),
// since the registry lives in the same process as the handlers it calls.
//
// ServerConfig and its implementations describe how the CLI should reach
// an MCP server, whether that's this in-process registry (SdkServerConfig)
// or an external process/endpoint (Stdio/SSE/HTTP).
package mcp
