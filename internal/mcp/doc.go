// Package mcp adapts the official MCP go-sdk server for mcpdev.
//
// It wraps *mcp.Server behind the Host interface so registrations can be
// forwarded to a live protocol runtime while mcpdev keeps its own shadow copy
// for CLI testing. It also provides the content-result builders, schema helpers,
// and the synthetic requests used when a handler is invoked without a client.
package mcp
