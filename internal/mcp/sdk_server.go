package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Compile-time verification that SDKServer implements ServerInstance.
var _ ServerInstance = (*SDKServer)(nil)

// SDKServer wraps the official MCP SDK server for programmatic access.
//
// Since the official SDK's Server is designed for transport-based communication
// (stdio, HTTP, SSE), this wrapper maintains its own tool registry for direct
// programmatic tool invocation via the control protocol.
type SDKServer struct {
	name    string
	version string

	mu       sync.RWMutex
	registry map[string]toolBinding
}

// toolBinding pairs a tool's advertised metadata with the handler that
// executes it.
type toolBinding struct {
	spec    *mcp.Tool
	handler mcp.ToolHandler
}

// NewSDKServer creates a new MCP SDK server wrapper.
func NewSDKServer(name, version string) *SDKServer {
	return &SDKServer{
		name:     name,
		version:  version,
		registry: make(map[string]toolBinding, 8),
	}
}

// AddTool registers a tool with the server.
func (s *SDKServer) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry[tool.Name] = toolBinding{spec: tool, handler: handler}
}

// Name returns the server name.
func (s *SDKServer) Name() string { return s.name }

// Version returns the server version.
func (s *SDKServer) Version() string { return s.version }

// ServerInfo returns server information for MCP initialize response.
func (s *SDKServer) ServerInfo() map[string]any {
	return map[string]any{"name": s.name, "version": s.version}
}

// Capabilities returns server capabilities for MCP initialize response.
func (s *SDKServer) Capabilities() map[string]any {
	return map[string]any{"tools": map[string]any{}}
}

// ListTools returns metadata for all registered tools, sorted by name so
// repeated calls against an unchanged registry produce a stable order.
func (s *SDKServer) ListTools() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}

	sort.Strings(names)

	result := make([]map[string]any, 0, len(names))
	for _, name := range names {
		result = append(result, describeTool(s.registry[name].spec))
	}

	return result
}

// describeTool renders a single tool's metadata for the control protocol.
func describeTool(t *mcp.Tool) map[string]any {
	out := map[string]any{
		"name":        t.Name,
		"description": t.Description,
	}

	if schema, ok := asJSONMap(t.InputSchema); ok {
		out["inputSchema"] = schema
	}

	if annotations, ok := asJSONMap(t.Annotations); ok {
		out["annotations"] = annotations
	}

	return out
}

// asJSONMap round-trips v through JSON to produce a control-protocol-safe
// map[string]any, reporting false if v is nil or does not serialize.
func asJSONMap(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	var out map[string]any
	if json.Unmarshal(data, &out) != nil {
		return nil, false
	}

	return out, true
}

// CallTool executes a tool by name with the given input.
// The result format matches what the control protocol expects. Lookup
// failures and handler errors are both reported as successful RPC calls
// carrying an is_error result, matching how the control protocol surfaces
// tool failures back to the CLI rather than as transport-level errors.
func (s *SDKServer) CallTool(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	s.mu.RLock()
	binding, found := s.registry[name]
	s.mu.RUnlock()

	if !found {
		return textErrorResult("Tool not found: " + name), nil
	}

	rawInput, err := json.Marshal(input)
	if err != nil {
		return textErrorResult("Failed to marshal input: " + err.Error()), nil
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: rawInput},
	}

	out, err := binding.handler(ctx, req)
	if err != nil {
		return textErrorResult("Tool execution failed: " + err.Error()), nil
	}

	return marshalCallToolResult(out), nil
}

// textErrorResult builds a single-text-block error result in the shape the
// control protocol expects from a failed tools/call.
func textErrorResult(text string) map[string]any {
	return map[string]any{
		"content":  []map[string]any{{"type": "text", "text": text}},
		"is_error": true,
	}
}

// contentConverters dispatches each concrete mcp.Content implementation to
// its control-protocol map representation.
var contentConverters = map[string]func(mcp.Content) map[string]any{
	"text": func(c mcp.Content) map[string]any {
		v := c.(*mcp.TextContent)

		return map[string]any{"type": "text", "text": v.Text}
	},
	"image": func(c mcp.Content) map[string]any {
		v := c.(*mcp.ImageContent)

		return map[string]any{"type": "image", "data": v.Data, "mimeType": v.MIMEType}
	},
	"audio": func(c mcp.Content) map[string]any {
		v := c.(*mcp.AudioContent)

		return map[string]any{"type": "audio", "data": v.Data, "mimeType": v.MIMEType}
	},
	"resource_link": func(c mcp.Content) map[string]any {
		v := c.(*mcp.ResourceLink)

		return map[string]any{"type": "resource_link", "uri": v.URI, "name": v.Name}
	},
}

// marshalCallToolResult converts an MCP CallToolResult to a map for the
// control protocol.
func marshalCallToolResult(result *mcp.CallToolResult) map[string]any {
	if result == nil {
		return map[string]any{"content": []map[string]any{}}
	}

	content := make([]map[string]any, 0, len(result.Content))

	for _, block := range result.Content {
		kind := contentKind(block)

		if convert, ok := contentConverters[kind]; ok {
			content = append(content, convert(block))

			continue
		}

		if embedded, ok := block.(*mcp.EmbeddedResource); ok && embedded.Resource != nil {
			content = append(content, map[string]any{
				"type": "resource",
				"resource": map[string]any{
					"uri":      embedded.Resource.URI,
					"mimeType": embedded.Resource.MIMEType,
					"text":     embedded.Resource.Text,
				},
			})
		}
	}

	out := map[string]any{"content": content}
	if result.IsError {
		out["is_error"] = true
	}

	return out
}

// contentKind identifies which contentConverters entry (if any) handles c.
func contentKind(c mcp.Content) string {
	switch c.(type) {
	case *mcp.TextContent:
		return "text"
	case *mcp.ImageContent:
		return "image"
	case *mcp.AudioContent:
		return "audio"
	case *mcp.ResourceLink:
		return "resource_link"
	default:
		return ""
	}
}

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"a": "float64", "b": "string"}
// This is a convenience function for creating schemas without the full jsonschema.Schema API.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = schemaForGoType(goType)
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// scalarSchemas maps Go scalar type names to their JSON Schema type.
var scalarSchemas = map[string]string{
	"string":  "string",
	"int":     "integer",
	"int8":    "integer",
	"int16":   "integer",
	"int32":   "integer",
	"int64":   "integer",
	"uint":    "integer",
	"uint8":   "integer",
	"uint16":  "integer",
	"uint32":  "integer",
	"uint64":  "integer",
	"float32": "number",
	"float64": "number",
	"float":   "number",
	"number":  "number",
	"bool":    "boolean",
	"boolean": "boolean",
	"any":     "object",
	"object":  "object",
}

// schemaForGoType converts a Go type string to a JSON Schema type.
func schemaForGoType(goType string) *jsonschema.Schema {
	if jsonType, ok := scalarSchemas[goType]; ok {
		return &jsonschema.Schema{Type: jsonType}
	}

	if after, ok := sliceElementType(goType); ok {
		return &jsonschema.Schema{Type: "array", Items: schemaForGoType(after)}
	}

	return &jsonschema.Schema{Type: "string"}
}

// sliceElementType strips a "[]" prefix, reporting whether goType named a
// slice at all.
func sliceElementType(goType string) (string, bool) {
	const prefix = "[]"
	if len(goType) <= len(prefix) || goType[:len(prefix)] != prefix {
		return "", false
	}

	return goType[len(prefix):], true
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

// ImageResult creates a CallToolResult with image content.
func ImageResult(data []byte, mimeType string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.ImageContent{Data: data, MIMEType: mimeType}},
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{Name: name, Description: description, InputSchema: inputSchema}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}
