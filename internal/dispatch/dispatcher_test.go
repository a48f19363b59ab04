package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcpdev-go/internal/cli"
	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

type fakeCatalog struct {
	tools     map[string]ToolEntry
	resources map[string]ResourceEntry
}

func (c *fakeCatalog) LookupTool(name string) (ToolEntry, bool) {
	entry, ok := c.tools[name]

	return entry, ok
}

func (c *fakeCatalog) LookupResource(name string) (ResourceEntry, bool) {
	entry, ok := c.resources[name]

	return entry, ok
}

func (c *fakeCatalog) ToolNames() []string {
	return sortedKeys(c.tools)
}

func (c *fakeCatalog) ResourceNames() []string {
	return sortedKeys(c.resources)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

func echoEntry() ToolEntry {
	return ToolEntry{
		Handler: func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := internalmcp.ParseArguments(req)
			if err != nil {
				return nil, err
			}

			text, _ := args["text"].(string)

			return internalmcp.TextResult("Echo: " + text), nil
		},
		TestArgs: func(input string) (map[string]any, error) {
			return map[string]any{"text": input}, nil
		},
	}
}

func configEntry() ResourceEntry {
	return ResourceEntry{
		Handler: func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return internalmcp.ResourceResult(req.Params.URI, "config for "+req.Params.URI), nil
		},
		TestURI: func(input string) (string, error) {
			if input == "" {
				return "config://app", nil
			}

			return input, nil
		},
	}
}

func newTestDispatcher(catalog Catalog) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	return newSessionDispatcher(catalog, nil)
}

func newSessionDispatcher(catalog Catalog, sessions SessionOpener) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(catalog, sessions, &stdout, &stderr, log), &stdout, &stderr
}

// countingOpener records how many sessions were opened and released.
type countingOpener struct {
	err      error
	opened   int
	released int
}

func (o *countingOpener) OpenSession(context.Context) (*mcp.ServerSession, func() error, error) {
	if o.err != nil {
		return nil, nil, o.err
	}

	o.opened++

	return nil, func() error {
		o.released++

		return nil
	}, nil
}

func TestRunTool(t *testing.T) {
	catalog := &fakeCatalog{
		tools: map[string]ToolEntry{
			"echo":    echoEntry(),
			"no-test": {Handler: echoEntry().Handler},
			"fails": {
				Handler: func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					return nil, errors.New("handler exploded")
				},
				TestArgs: func(string) (map[string]any, error) { return nil, nil },
			},
			"bad-adapter": {
				Handler: echoEntry().Handler,
				TestArgs: func(string) (map[string]any, error) {
					return nil, errors.New("expected a number")
				},
			},
			"panics": {
				Handler: func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					panic("nil map write")
				},
				TestArgs: func(string) (map[string]any, error) { return nil, nil },
			},
			"multi": {
				Handler: func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					return &mcp.CallToolResult{Content: []mcp.Content{
						&mcp.TextContent{Text: "first"},
						&mcp.ImageContent{Data: []byte("png"), MIMEType: "image/png"},
						&mcp.TextContent{Text: "second"},
					}}, nil
				},
				TestArgs: func(string) (map[string]any, error) { return nil, nil },
			},
			"empty": {
				Handler: func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					return nil, nil
				},
				TestArgs: func(string) (map[string]any, error) { return nil, nil },
			},
		},
	}

	tests := []struct {
		name       string
		tool       string
		input      string
		wantCode   int
		wantStdout string
		wantStderr []string
	}{
		{
			name:       "echo prints text content",
			tool:       "echo",
			input:      "Hello CLI",
			wantCode:   ExitSuccess,
			wantStdout: "Echo: Hello CLI\n",
		},
		{
			name:       "unknown tool lists available tools",
			tool:       "missing",
			wantCode:   ExitFailure,
			wantStderr: []string{"Tool 'missing' not found", "Available tools: bad-adapter, echo, empty, fails, multi, no-test, panics"},
		},
		{
			name:       "tool without adapter",
			tool:       "no-test",
			wantCode:   ExitFailure,
			wantStderr: []string{"Tool 'no-test' does not have a test configuration"},
		},
		{
			name:       "handler error",
			tool:       "fails",
			wantCode:   ExitFailure,
			wantStderr: []string{"Error calling tool 'fails': handler exploded"},
		},
		{
			name:       "adapter error",
			tool:       "bad-adapter",
			input:      "abc",
			wantCode:   ExitFailure,
			wantStderr: []string{"Error calling tool 'bad-adapter': expected a number"},
		},
		{
			name:       "handler panic",
			tool:       "panics",
			wantCode:   ExitFailure,
			wantStderr: []string{"Error calling tool 'panics': panic: nil map write"},
		},
		{
			name:       "only text blocks are printed, in order",
			tool:       "multi",
			wantCode:   ExitSuccess,
			wantStdout: "first\nsecond\n",
		},
		{
			name:     "nil result prints nothing",
			tool:     "empty",
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, stdout, stderr := newTestDispatcher(catalog)

			code := d.RunTool(context.Background(), tt.tool, tt.input)

			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantStdout, stdout.String())

			for _, want := range tt.wantStderr {
				require.Contains(t, stderr.String(), want)
			}

			if tt.wantCode == ExitSuccess {
				require.Empty(t, stderr.String())
			}
		})
	}
}

func TestRunTool_SyntheticCallContext(t *testing.T) {
	var (
		gotInfo    internalmcp.CallInfo
		gotSession bool
		gotName    string
	)

	catalog := &fakeCatalog{tools: map[string]ToolEntry{
		"inspect": {
			Handler: func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				gotInfo, _ = internalmcp.CallInfoFromContext(ctx)
				gotSession = req.Session != nil
				gotName = req.Params.Name

				return internalmcp.TextResult("ok"), ctx.Err()
			},
			TestArgs: func(string) (map[string]any, error) { return nil, nil },
		},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, stdout, _ := newTestDispatcher(catalog)
	require.Equal(t, ExitSuccess, d.RunTool(ctx, "inspect", ""))
	require.Equal(t, "ok\n", stdout.String())
	require.Equal(t, internalmcp.CallInfo{RequestID: internalmcp.SyntheticRequestID, Synthetic: true}, gotInfo)
	require.False(t, gotSession)
	require.Equal(t, "inspect", gotName)
}

func TestRunResource(t *testing.T) {
	catalog := &fakeCatalog{
		resources: map[string]ResourceEntry{
			"config":  configEntry(),
			"no-test": {Handler: configEntry().Handler},
			"no-default": {
				Handler: configEntry().Handler,
				TestURI: func(input string) (string, error) { return input, nil },
			},
			"blob": {
				Handler: func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
					return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
						{URI: req.Params.URI, Blob: []byte("hi")},
						{URI: req.Params.URI, Text: "plain"},
					}}, nil
				},
				TestURI: func(string) (string, error) { return "file:///logo.png", nil },
			},
			"fails": {
				Handler: func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
					return nil, errors.New("disk unavailable")
				},
				TestURI: func(string) (string, error) { return "data://x", nil },
			},
		},
	}

	tests := []struct {
		name       string
		resource   string
		input      string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "adapter default uri",
			resource:   "config",
			wantCode:   ExitSuccess,
			wantStdout: "config for config://app\n",
		},
		{
			name:       "explicit uri",
			resource:   "config",
			input:      "config://app",
			wantCode:   ExitSuccess,
			wantStdout: "config for config://app\n",
		},
		{
			name:       "unknown resource",
			resource:   "missing",
			wantCode:   ExitFailure,
			wantStderr: "Resource 'missing' not found\nAvailable resources: blob, config, fails, no-default, no-test\n",
		},
		{
			name:       "resource without adapter",
			resource:   "no-test",
			wantCode:   ExitFailure,
			wantStderr: "Resource 'no-test' does not have a test configuration\n",
		},
		{
			name:       "empty uri is not defaulted by the dispatcher",
			resource:   "no-default",
			wantCode:   ExitFailure,
			wantStderr: "Error reading resource 'no-default': invalid resource URI",
		},
		{
			name:       "blob is printed as base64",
			resource:   "blob",
			wantCode:   ExitSuccess,
			wantStdout: "aGk=\nplain\n",
		},
		{
			name:       "handler error",
			resource:   "fails",
			wantCode:   ExitFailure,
			wantStderr: "Error reading resource 'fails': disk unavailable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, stdout, stderr := newTestDispatcher(catalog)

			code := d.RunResource(context.Background(), tt.resource, tt.input)

			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantStdout, stdout.String())
			require.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestRun_RoutesByKind(t *testing.T) {
	catalog := &fakeCatalog{
		tools:     map[string]ToolEntry{"echo": echoEntry()},
		resources: map[string]ResourceEntry{"config": configEntry()},
	}

	inv, ok := cli.ParseInvocation([]string{"tool", "echo", "a", "b"})
	require.True(t, ok)

	d, stdout, _ := newTestDispatcher(catalog)
	require.Equal(t, ExitSuccess, d.Run(context.Background(), inv))
	require.Equal(t, "Echo: a b\n", stdout.String())

	inv, ok = cli.ParseInvocation([]string{"resource", "config"})
	require.True(t, ok)

	d, stdout, _ = newTestDispatcher(catalog)
	require.Equal(t, ExitSuccess, d.Run(context.Background(), inv))
	require.Equal(t, "config for config://app\n", stdout.String())
}

func TestRunTool_NoToolsRegistered(t *testing.T) {
	d, _, stderr := newTestDispatcher(&fakeCatalog{})

	require.Equal(t, ExitFailure, d.RunTool(context.Background(), "echo", ""))
	require.Contains(t, stderr.String(), "Available tools: (none)")
}

func TestRunTool_HandlerUsesSessionDirectly(t *testing.T) {
	catalog := &fakeCatalog{tools: map[string]ToolEntry{
		"notify": {
			Handler: func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				err := req.Session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
					ProgressToken: "step",
					Progress:      1,
					Total:         2,
					Message:       "halfway",
				})
				if err != nil {
					return nil, err
				}

				err = req.Session.Log(ctx, &mcp.LoggingMessageParams{Level: "info", Data: "working"})
				if err != nil {
					return nil, err
				}

				return internalmcp.TextResult("notified"), nil
			},
			TestArgs: func(string) (map[string]any, error) { return nil, nil },
		},
	}}

	host := internalmcp.NewSDKHost("cli-test", "1.0.0", "")

	d, stdout, stderr := newSessionDispatcher(catalog, host)

	require.Equal(t, ExitSuccess, d.RunTool(context.Background(), "notify", ""))
	require.Equal(t, "notified\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestRunResource_HandlerReceivesSession(t *testing.T) {
	var gotSession bool

	catalog := &fakeCatalog{resources: map[string]ResourceEntry{
		"config": {
			Handler: func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
				gotSession = req.Session != nil
				if err := req.Session.Log(ctx, &mcp.LoggingMessageParams{Level: "debug", Data: "read"}); err != nil {
					return nil, err
				}

				return internalmcp.ResourceResult(req.Params.URI, "ok"), nil
			},
			TestURI: func(string) (string, error) { return "config://app", nil },
		},
	}}

	host := internalmcp.NewSDKHost("cli-test", "1.0.0", "")

	d, stdout, _ := newSessionDispatcher(catalog, host)

	require.Equal(t, ExitSuccess, d.RunResource(context.Background(), "config", ""))
	require.Equal(t, "ok\n", stdout.String())
	require.True(t, gotSession)
}

func TestRunTool_SessionLifecycle(t *testing.T) {
	catalog := &fakeCatalog{tools: map[string]ToolEntry{
		"echo": echoEntry(),
		"bad-adapter": {
			Handler: echoEntry().Handler,
			TestArgs: func(string) (map[string]any, error) {
				return nil, errors.New("expected a number")
			},
		},
	}}

	t.Run("released after the handler returns", func(t *testing.T) {
		opener := &countingOpener{}
		d, _, _ := newSessionDispatcher(catalog, opener)

		require.Equal(t, ExitSuccess, d.RunTool(context.Background(), "echo", "hi"))
		require.Equal(t, 1, opener.opened)
		require.Equal(t, 1, opener.released)
	})

	t.Run("not opened when the adapter fails", func(t *testing.T) {
		opener := &countingOpener{}
		d, _, _ := newSessionDispatcher(catalog, opener)

		require.Equal(t, ExitFailure, d.RunTool(context.Background(), "bad-adapter", "x"))
		require.Zero(t, opener.opened)
	})

	t.Run("open failure is reported", func(t *testing.T) {
		opener := &countingOpener{err: errors.New("pipe closed")}
		d, _, stderr := newSessionDispatcher(catalog, opener)

		require.Equal(t, ExitFailure, d.RunTool(context.Background(), "echo", "hi"))
		require.Equal(t, "Error calling tool 'echo': open session: pipe closed\n", stderr.String())
	})
}
