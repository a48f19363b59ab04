package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TextContent creates a text content block.
func TextContent(text string) *mcp.TextContent {
	return &mcp.TextContent{Text: text}
}

// TextResult creates a CallToolResult with a single text content block.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			TextContent(text),
		},
	}
}

// ErrorResult is a TextResult marked as a tool-level error. The CLI prints it
// like any other text result.
func ErrorResult(message string) *mcp.CallToolResult {
	result := TextResult(message)
	result.IsError = true

	return result
}

// ResourceResult creates a ReadResourceResult with a single text entry.
func ResourceResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, Text: text},
		},
	}
}
