package mcpdev

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// TextContent creates a text content block.
func TextContent(text string) *mcp.TextContent {
	return internalmcp.TextContent(text)
}

// TextResult creates a CallToolResult with a single text content block.
func TextResult(text string) *mcp.CallToolResult {
	return internalmcp.TextResult(text)
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return internalmcp.ErrorResult(message)
}

// ResourceResult creates a ReadResourceResult with a single text entry.
func ResourceResult(uri, text string) *mcp.ReadResourceResult {
	return internalmcp.ResourceResult(uri, text)
}
