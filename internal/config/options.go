// Package config provides configuration types for mcpdev.
package config

import (
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// Options configures a Server.
type Options struct {
	// Logger is the slog logger for startup, shutdown, and registration notices.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Transport is the transport Connect serves on.
	// If nil, a stdio transport is used.
	Transport mcp.Transport

	// Host is the protocol runtime registrations are forwarded to.
	// If nil, a go-sdk server is created from the server name and version.
	Host internalmcp.Host

	// Instructions are sent to clients during initialization.
	// Only used when Host is nil.
	Instructions string

	// Args are the command-line arguments inspected by Connect, without the
	// program name. If nil, os.Args[1:] is used.
	Args []string

	// Stdout receives CLI invocation output. If nil, os.Stdout is used.
	Stdout io.Writer

	// Stderr receives CLI invocation errors. If nil, os.Stderr is used.
	Stderr io.Writer

	// Exit terminates the process after a failed CLI invocation.
	// If nil, os.Exit is used.
	Exit func(code int)
}
