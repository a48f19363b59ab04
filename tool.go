package mcpdev

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// Re-export MCP SDK types for public API.
// These are the official MCP protocol types.
type (
	// CallToolRequest is the request passed to tool handlers.
	CallToolRequest = mcp.CallToolRequest

	// CallToolResult is the server's response to a tool call.
	// Use the TextResult or ErrorResult helpers to create results.
	CallToolResult = mcp.CallToolResult

	// ToolHandler is the function signature for tool handlers.
	ToolHandler = mcp.ToolHandler

	// ToolAnnotations describes optional hints about tool behavior.
	// Fields include ReadOnlyHint, DestructiveHint, IdempotentHint,
	// OpenWorldHint, and Title.
	ToolAnnotations = mcp.ToolAnnotations

	// Content is the interface for content types in tool results.
	Content = mcp.Content

	// Schema is a JSON Schema object for tool input validation.
	Schema = jsonschema.Schema

	// Transport is a duplex channel an MCP server can be connected to.
	Transport = mcp.Transport

	// ServerSession is a live connection to one MCP client.
	ServerSession = mcp.ServerSession

	// LoggingLevel is the severity of a log message sent to the client.
	LoggingLevel = mcp.LoggingLevel
)

// Tool describes a tool registered with a Server. The tool name is its key in
// the map passed to RegisterTools.
type Tool struct {
	Title       string
	Description string

	// InputSchema describes the tool arguments. If nil, the tool takes no
	// arguments and an empty object schema is registered.
	InputSchema *jsonschema.Schema

	// OutputSchema describes structured output. It is kept with the
	// descriptor and not forwarded to the host.
	OutputSchema *jsonschema.Schema

	Annotations *mcp.ToolAnnotations

	// Handler serves tools/call requests and command-line invocations. On the
	// command line req.Session is connected to a client that discards
	// everything it receives.
	Handler mcp.ToolHandler

	// TestArgs converts one raw command-line string into tool arguments.
	// A tool without TestArgs cannot be invoked from the command line.
	TestArgs func(input string) (map[string]any, error)
}

// definition returns the subset of t forwarded to the host.
func (t *Tool) definition(name string) *mcp.Tool {
	schema := t.InputSchema
	if schema == nil {
		schema = internalmcp.SimpleSchema(nil)
	}

	return &mcp.Tool{
		Name:        name,
		Title:       t.Title,
		Description: t.Description,
		InputSchema: schema,
		Annotations: t.Annotations,
	}
}

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"a": "float64", "b": "string"}
//
// Type mappings:
//   - "string"           → {"type": "string"}
//   - "int", "int64"     → {"type": "integer"}
//   - "float64", "float" → {"type": "number"}
//   - "bool"             → {"type": "boolean"}
//   - "[]string"         → {"type": "array", "items": {"type": "string"}}
//   - "any", "object"    → {"type": "object"}
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	return internalmcp.SimpleSchema(props)
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
// This is a convenience function for extracting tool input.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	return internalmcp.ParseArguments(req)
}
