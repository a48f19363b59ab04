package mcpdev

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/mcpdev-go/internal/cli"
	"github.com/wagiedev/mcpdev-go/internal/dispatch"
	"github.com/wagiedev/mcpdev-go/internal/errors"
	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// Server registers tools and resources with an MCP host and keeps a copy of
// every descriptor so each can also be invoked from the command line.
//
// Registrations are expected to happen before Connect. After that the
// descriptor maps are only read.
type Server struct {
	name      string
	version   string
	log       *slog.Logger
	host      Host
	transport mcp.Transport
	args      []string
	stdout    io.Writer
	stderr    io.Writer
	exit      func(code int)

	mu        sync.RWMutex
	tools     map[string]*Tool
	resources map[string]*Resource

	connMu       sync.Mutex
	connected    bool
	cliRequested bool
}

// NewServer creates a Server. name and version identify the server to
// clients and must not be empty or whitespace.
func NewServer(name, version string, opts ...Option) (*Server, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", errors.ErrInvalidConfig)
	}

	if strings.TrimSpace(version) == "" {
		return nil, fmt.Errorf("%w: version is required", errors.ErrInvalidConfig)
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	host := options.Host
	if host == nil {
		host = internalmcp.NewSDKHost(name, version, options.Instructions)
	}

	transport := options.Transport
	if transport == nil {
		transport = &mcp.StdioTransport{}
	}

	args := options.Args
	if args == nil {
		args = os.Args[1:]
	}

	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	exit := options.Exit
	if exit == nil {
		exit = os.Exit
	}

	return &Server{
		name:      name,
		version:   version,
		log:       log.With("server", name),
		host:      host,
		transport: transport,
		args:      args,
		stdout:    stdout,
		stderr:    stderr,
		exit:      exit,
		tools:     make(map[string]*Tool, 8),
		resources: make(map[string]*Resource, 8),
	}, nil
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// Version returns the server version.
func (s *Server) Version() string {
	return s.version
}

// RegisterTools registers a batch of tools keyed by name.
//
// Every tool in the batch is stored for command-line invocation first. Tools
// are then forwarded to the host in name order; the first rejection is logged
// and returned as a *RegistrationError, and the remaining tools of the batch
// are not forwarded. Tools forwarded before the failure stay registered.
// Registering a name again replaces the previous tool.
func (s *Server) RegisterTools(tools map[string]*Tool) error {
	for name, tool := range tools {
		if tool == nil || tool.Handler == nil {
			return &errors.RegistrationError{Kind: errors.KindTool, Name: name, Err: errors.ErrInvalidDescriptor}
		}
	}

	s.mu.Lock()
	maps.Copy(s.tools, tools)
	s.mu.Unlock()

	for _, name := range slices.Sorted(maps.Keys(tools)) {
		tool := tools[name]

		if err := s.host.AddTool(tool.definition(name), tool.Handler); err != nil {
			s.log.Error("Failed to register tool", "name", name, "error", err)

			return &errors.RegistrationError{Kind: errors.KindTool, Name: name, Err: err}
		}

		s.log.Debug("Registered tool", "name", name, "testable", tool.TestArgs != nil)
	}

	return nil
}

// RegisterResources registers a batch of resources keyed by name.
// It follows the same rules as RegisterTools.
func (s *Server) RegisterResources(resources map[string]*Resource) error {
	for name, resource := range resources {
		if resource == nil || resource.Handler == nil {
			return &errors.RegistrationError{Kind: errors.KindResource, Name: name, Err: errors.ErrInvalidDescriptor}
		}
	}

	s.mu.Lock()
	maps.Copy(s.resources, resources)
	s.mu.Unlock()

	for _, name := range slices.Sorted(maps.Keys(resources)) {
		resource := resources[name]

		if err := s.host.AddResource(resource.definition(name), resource.Handler); err != nil {
			s.log.Error("Failed to register resource", "name", name, "uri", resource.URI, "error", err)

			return &errors.RegistrationError{Kind: errors.KindResource, Name: name, Err: err}
		}

		s.log.Debug("Registered resource", "name", name, "uri", resource.URI, "testable", resource.TestURI != nil)
	}

	return nil
}

// Tool returns the tool registered under name.
func (s *Server) Tool(name string) (*Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tool, ok := s.tools[name]

	return tool, ok
}

// Resource returns the resource registered under name.
func (s *Server) Resource(name string) (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resource, ok := s.resources[name]

	return resource, ok
}

// ToolNames returns the registered tool names in sorted order.
func (s *Server) ToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.tools))
}

// ResourceNames returns the registered resource names in sorted order.
func (s *Server) ResourceNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.resources))
}

// Connect starts serving, or runs a command-line invocation.
//
// If the arguments are "tool <name> [input...]" or "resource <name> [input...]",
// the named tool or resource is invoked once and Connect returns without
// connecting. A failed invocation calls the exit function with status 1.
//
// Otherwise the host is connected to the transport. Connect returns
// ErrAlreadyConnected if the server is already connected.
func (s *Server) Connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.connected {
		return errors.ErrAlreadyConnected
	}

	if inv, ok := cli.ParseInvocation(s.args); ok {
		s.cliRequested = true

		d := dispatch.New(catalog{s}, s.host, s.stdout, s.stderr, s.log)
		if code := d.Run(ctx, inv); code != dispatch.ExitSuccess {
			s.exit(code)
		}

		return nil
	}

	if err := s.host.Connect(ctx, s.transport); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	s.connected = true
	s.log.Info("MCP server running", "version", s.version)

	return nil
}

// Close ends the session. It is a no-op if the server is not connected.
func (s *Server) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if !s.connected {
		return nil
	}

	err := s.host.Close()
	s.connected = false
	s.log.Info("MCP server stopped")

	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// IsConnected reports whether the server is serving a session.
func (s *Server) IsConnected() bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	return s.connected
}

// CLIRequested reports whether Connect handled a command-line invocation.
func (s *Server) CLIRequested() bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	return s.cliRequested
}

// Run connects and serves until the session ends or ctx is cancelled, then
// closes the server. A command-line invocation returns as soon as it is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}

	if s.CLIRequested() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()

		return s.host.Wait()
	})

	g.Go(func() error {
		<-gctx.Done()

		return s.Close()
	})

	return g.Wait()
}

// catalog exposes the server's descriptors to the dispatcher.
type catalog struct {
	s *Server
}

// Compile-time verification that catalog implements dispatch.Catalog.
var _ dispatch.Catalog = catalog{}

func (c catalog) LookupTool(name string) (dispatch.ToolEntry, bool) {
	tool, ok := c.s.Tool(name)
	if !ok {
		return dispatch.ToolEntry{}, false
	}

	return dispatch.ToolEntry{Handler: tool.Handler, TestArgs: tool.TestArgs}, true
}

func (c catalog) LookupResource(name string) (dispatch.ResourceEntry, bool) {
	resource, ok := c.s.Resource(name)
	if !ok {
		return dispatch.ResourceEntry{}, false
	}

	return dispatch.ResourceEntry{Handler: resource.Handler, TestURI: resource.TestURI}, true
}

func (c catalog) ToolNames() []string {
	return c.s.ToolNames()
}

func (c catalog) ResourceNames() []string {
	return c.s.ResourceNames()
}
