package mcpdev

import (
	"context"
	"fmt"
)

// Serve manages server lifecycle with automatic cleanup.
//
// This helper creates a server, passes it to setup for registration, and then
// runs it: either a single command-line invocation or a session on the
// configured transport. The server is closed when Run returns.
//
// Example usage:
//
//	err := mcpdev.Serve(ctx, "demo", "1.0.0", func(s *mcpdev.Server) error {
//	    return s.RegisterTools(tools)
//	},
//	    mcpdev.WithLogger(log),
//	)
func Serve(ctx context.Context, name, version string, setup func(*Server) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	srv, err := NewServer(name, version, opts...)
	if err != nil {
		return err
	}

	if setup != nil {
		if err := setup(srv); err != nil {
			return fmt.Errorf("failed to set up server: %w", err)
		}
	}

	defer func() {
		if closeErr := srv.Close(); closeErr != nil {
			srv.log.Warn("failed to close server", "error", closeErr)
		}
	}()

	return srv.Run(ctx)
}
