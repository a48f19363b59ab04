package dispatch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/mcpdev-go/internal/cli"
	"github.com/wagiedev/mcpdev-go/internal/errors"
	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// Exit statuses returned by the Dispatcher.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ToolEntry is the part of a tool descriptor the dispatcher needs.
type ToolEntry struct {
	Handler  mcp.ToolHandler
	TestArgs func(input string) (map[string]any, error)
}

// ResourceEntry is the part of a resource descriptor the dispatcher needs.
type ResourceEntry struct {
	Handler mcp.ResourceHandler
	TestURI func(input string) (string, error)
}

// Catalog resolves names to registered descriptors.
type Catalog interface {
	LookupTool(name string) (ToolEntry, bool)
	LookupResource(name string) (ResourceEntry, bool)
	ToolNames() []string
	ResourceNames() []string
}

// SessionOpener opens the session handed to handlers on the CLI path.
//
// The returned release function ends the session. A nil session is allowed;
// handlers then see a request without a session.
type SessionOpener interface {
	OpenSession(ctx context.Context) (session *mcp.ServerSession, release func() error, err error)
}

// Compile-time verification that the go-sdk host can open CLI sessions.
var _ SessionOpener = (*internalmcp.SDKHost)(nil)

// Dispatcher runs single CLI test invocations.
type Dispatcher struct {
	catalog  Catalog
	sessions SessionOpener
	stdout   io.Writer
	stderr   io.Writer
	log      *slog.Logger
}

// New creates a Dispatcher writing results to stdout and diagnostics to stderr.
// sessions may be nil, in which case handlers receive requests without a session.
func New(catalog Catalog, sessions SessionOpener, stdout, stderr io.Writer, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		catalog:  catalog,
		sessions: sessions,
		stdout:   stdout,
		stderr:   stderr,
		log:      log.With("component", "dispatcher"),
	}
}

// Run dispatches a parsed invocation to RunTool or RunResource.
func (d *Dispatcher) Run(ctx context.Context, inv cli.Invocation) int {
	if inv.Kind == errors.KindResource {
		return d.RunResource(ctx, inv.Name, inv.Input)
	}

	return d.RunTool(ctx, inv.Name, inv.Input)
}

// RunTool invokes the named tool with arguments produced by its test adapter.
func (d *Dispatcher) RunTool(ctx context.Context, name, input string) int {
	log := d.invocationLog(errors.KindTool, name)

	entry, ok := d.catalog.LookupTool(name)
	if !ok {
		d.reportNotFound(errors.KindTool, name, d.catalog.ToolNames())

		return ExitFailure
	}

	if entry.TestArgs == nil {
		d.reportNoTestConfig(errors.KindTool, name)

		return ExitFailure
	}

	result, err := d.callTool(ctx, name, entry, input)
	if err != nil {
		d.reportInvocationError(log, &errors.InvocationError{Kind: errors.KindTool, Name: name, Err: err})

		return ExitFailure
	}

	if result != nil {
		for _, content := range result.Content {
			if text, ok := content.(*mcp.TextContent); ok {
				fmt.Fprintln(d.stdout, text.Text)
			}
		}
	}

	log.Debug("Tool invocation succeeded")

	return ExitSuccess
}

// RunResource reads the named resource at the URI produced by its test adapter.
func (d *Dispatcher) RunResource(ctx context.Context, name, input string) int {
	log := d.invocationLog(errors.KindResource, name)

	entry, ok := d.catalog.LookupResource(name)
	if !ok {
		d.reportNotFound(errors.KindResource, name, d.catalog.ResourceNames())

		return ExitFailure
	}

	if entry.TestURI == nil {
		d.reportNoTestConfig(errors.KindResource, name)

		return ExitFailure
	}

	result, err := d.readResource(ctx, entry, input)
	if err != nil {
		d.reportInvocationError(log, &errors.InvocationError{Kind: errors.KindResource, Name: name, Err: err})

		return ExitFailure
	}

	if result != nil {
		for _, contents := range result.Contents {
			if contents == nil {
				continue
			}

			if contents.Text == "" && len(contents.Blob) > 0 {
				fmt.Fprintln(d.stdout, base64.StdEncoding.EncodeToString(contents.Blob))

				continue
			}

			fmt.Fprintln(d.stdout, contents.Text)
		}
	}

	log.Debug("Resource invocation succeeded")

	return ExitSuccess
}

func (d *Dispatcher) invocationLog(kind errors.Kind, name string) *slog.Logger {
	return d.log.With("kind", string(kind), "name", name, "invocation_id", ulid.Make().String())
}

func (d *Dispatcher) reportNotFound(kind errors.Kind, name string, known []string) {
	fmt.Fprintf(d.stderr, "%s '%s' not found\n", kind.Title(), name)

	available := "(none)"
	if len(known) > 0 {
		available = strings.Join(known, ", ")
	}

	fmt.Fprintf(d.stderr, "Available %ss: %s\n", kind, available)
}

func (d *Dispatcher) reportNoTestConfig(kind errors.Kind, name string) {
	fmt.Fprintf(d.stderr, "%s '%s' does not have a test configuration\n", kind.Title(), name)
}

func (d *Dispatcher) reportInvocationError(log *slog.Logger, invErr *errors.InvocationError) {
	log.Debug("Invocation failed", "error", invErr)
	fmt.Fprintf(d.stderr, "Error %s '%s': %v\n", invErr.Action(), invErr.Name, invErr.Err)
}

// openSession opens a session for one invocation. The release function is
// never nil.
func (d *Dispatcher) openSession(ctx context.Context) (*mcp.ServerSession, func(), error) {
	if d.sessions == nil {
		return nil, func() {}, nil
	}

	session, release, err := d.sessions.OpenSession(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}

	return session, func() {
		if release == nil {
			return
		}

		if err := release(); err != nil {
			d.log.Debug("Failed to release session", "error", err)
		}
	}, nil
}

// callTool runs the adapter and handler. Panics are returned as errors.
func (d *Dispatcher) callTool(
	ctx context.Context,
	name string,
	entry ToolEntry,
	input string,
) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	args, err := entry.TestArgs(input)
	if err != nil {
		return nil, err
	}

	req, err := internalmcp.NewCallToolRequest(name, args)
	if err != nil {
		return nil, err
	}

	callCtx := internalmcp.SyntheticContext(ctx)

	session, release, err := d.openSession(callCtx)
	if err != nil {
		return nil, err
	}
	defer release()

	req.Session = session

	return entry.Handler(callCtx, req)
}

// readResource runs the adapter, parses the URI, and runs the handler.
// Panics are returned as errors.
func (d *Dispatcher) readResource(
	ctx context.Context,
	entry ResourceEntry,
	input string,
) (result *mcp.ReadResourceResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	raw, err := entry.TestURI(input)
	if err != nil {
		return nil, err
	}

	uri, err := internalmcp.ParseResourceURI(raw)
	if err != nil {
		return nil, err
	}

	callCtx := internalmcp.SyntheticContext(ctx)

	session, release, err := d.openSession(callCtx)
	if err != nil {
		return nil, err
	}
	defer release()

	req := internalmcp.NewReadResourceRequest(uri)
	req.Session = session

	return entry.Handler(callCtx, req)
}
