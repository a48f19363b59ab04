package mcpdev

import (
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcpdev-go/internal/config"
	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// Options configures a Server.
type Options = config.Options

// Host is the protocol runtime registrations are forwarded to.
// The default is the official go-sdk server.
type Host = internalmcp.Host

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for startup, shutdown, and registration notices.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTransport sets the transport Connect serves on.
// If not set, the server serves on stdin and stdout.
func WithTransport(transport mcp.Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// WithHost replaces the go-sdk server registrations are forwarded to.
func WithHost(host Host) Option {
	return func(o *Options) {
		o.Host = host
	}
}

// WithInstructions sets the instructions sent to clients during initialization.
func WithInstructions(instructions string) Option {
	return func(o *Options) {
		o.Instructions = instructions
	}
}

// WithArgs sets the command-line arguments Connect inspects, without the
// program name. If not set, os.Args[1:] is used.
func WithArgs(args ...string) Option {
	return func(o *Options) {
		o.Args = append([]string{}, args...)
	}
}

// WithStdout sets where command-line invocation output is written.
func WithStdout(w io.Writer) Option {
	return func(o *Options) {
		o.Stdout = w
	}
}

// WithStderr sets where command-line invocation errors are written.
func WithStderr(w io.Writer) Option {
	return func(o *Options) {
		o.Stderr = w
	}
}

// WithExit sets the function called with the exit status of a failed
// command-line invocation. If not set, os.Exit is used.
func WithExit(exit func(code int)) Option {
	return func(o *Options) {
		o.Exit = exit
	}
}
