package mcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcpdev-go/internal/errors"
)

// Host is the protocol runtime that registrations are forwarded to.
//
// Every method may be called more than once. AddTool and AddResource return an
// error when the runtime rejects the definition.
type Host interface {
	// AddTool registers a tool and its handler with the runtime.
	AddTool(tool *mcp.Tool, handler mcp.ToolHandler) error
	// AddResource registers a resource and its handler with the runtime.
	AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) error
	// Connect starts serving on the given transport and returns once the
	// session is established.
	Connect(ctx context.Context, transport mcp.Transport) error
	// Wait blocks until the current session ends.
	Wait() error
	// Close ends the current session.
	Close() error
	// OpenSession connects the runtime to an in-process client that discards
	// everything sent to it, for handlers invoked from the command line.
	OpenSession(ctx context.Context) (*mcp.ServerSession, func() error, error)
}

// Compile-time verification that SDKHost implements Host.
var _ Host = (*SDKHost)(nil)

// SDKHost implements Host on top of the official go-sdk server.
//
// The go-sdk server panics on invalid definitions (for example a tool whose
// input schema is not an object). SDKHost converts those panics into errors.
type SDKHost struct {
	server  *mcp.Server
	mu      sync.Mutex
	session *mcp.ServerSession
	closing bool
	// ended is set once the session from the last Connect has ended,
	// either by Close or by the client going away.
	ended bool
}

// sinkClient identifies the in-process client behind OpenSession.
var sinkClient = &mcp.Implementation{Name: "mcpdev-cli", Version: "1.0.0"}

// NewSDKHost creates a host backed by a new go-sdk server.
func NewSDKHost(name, version, instructions string) *SDKHost {
	var opts *mcp.ServerOptions
	if instructions != "" {
		opts = &mcp.ServerOptions{Instructions: instructions}
	}

	return &SDKHost{
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, opts),
	}
}

// Server returns the underlying go-sdk server.
func (h *SDKHost) Server() *mcp.Server {
	return h.server
}

// AddTool registers a tool with the go-sdk server.
func (h *SDKHost) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) (err error) {
	defer func() { err = panicError(recover(), err) }()

	h.server.AddTool(tool, handler)

	return nil
}

// AddResource registers a resource with the go-sdk server.
func (h *SDKHost) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) (err error) {
	defer func() { err = panicError(recover(), err) }()

	h.server.AddResource(resource, handler)

	return nil
}

// Connect connects the server to transport.
func (h *SDKHost) Connect(ctx context.Context, transport mcp.Transport) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session != nil {
		return errors.ErrAlreadyConnected
	}

	session, err := h.server.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("connect server: %w", err)
	}

	h.session = session
	h.closing = false
	h.ended = false

	return nil
}

// Wait blocks until the session ends. A client disconnect and errors caused
// by Close are not reported, including a Close that completed before Wait was
// called. Once Wait returns the host can connect again.
func (h *SDKHost) Wait() error {
	h.mu.Lock()
	session := h.session
	ended := h.ended
	h.mu.Unlock()

	if session == nil {
		if ended {
			return nil
		}

		return errors.ErrNotConnected
	}

	err := session.Wait()

	h.mu.Lock()
	closing := h.closing
	if h.session == session {
		h.session = nil
		h.ended = true
	}
	h.mu.Unlock()

	if closing || stderrors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// Close closes the session. It is a no-op when no session is open.
func (h *SDKHost) Close() error {
	h.mu.Lock()
	session := h.session
	h.session = nil
	h.closing = session != nil
	h.ended = h.ended || session != nil
	h.mu.Unlock()

	if session == nil {
		return nil
	}

	if err := session.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	return nil
}

// OpenSession connects the server to one end of an in-memory transport pair
// with a client on the other end that has no handlers. Notifications sent on
// the returned session are dropped by that client, and requests to it are
// answered with the client's defaults. The session is independent of the one
// opened by Connect. release closes both ends.
func (h *SDKHost) OpenSession(ctx context.Context) (*mcp.ServerSession, func() error, error) {
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	session, err := h.server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("connect server: %w", err)
	}

	client, err := mcp.NewClient(sinkClient, nil).Connect(ctx, clientTransport, nil)
	if err != nil {
		_ = session.Close()

		return nil, nil, fmt.Errorf("connect sink client: %w", err)
	}

	release := func() error {
		return stderrors.Join(client.Close(), session.Close())
	}

	return session, release, nil
}

// panicError converts a recovered panic value into an error.
// err is returned unchanged when nothing was recovered.
func panicError(recovered any, err error) error {
	if recovered == nil {
		return err
	}

	if e, ok := recovered.(error); ok {
		return e
	}

	return fmt.Errorf("%v", recovered)
}
