package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcpdev-go/internal/errors"
)

// SyntheticRequestID is the request identifier carried by every CLI invocation.
const SyntheticRequestID = "cli"

// CallInfo describes the request a handler is serving.
type CallInfo struct {
	// RequestID identifies the request. It is SyntheticRequestID on the CLI path.
	RequestID string
	// Synthetic is true when no client or session exists.
	Synthetic bool
}

type callInfoKey struct{}

// WithCallInfo returns a copy of ctx carrying info.
func WithCallInfo(ctx context.Context, info CallInfo) context.Context {
	return context.WithValue(ctx, callInfoKey{}, info)
}

// CallInfoFromContext returns the CallInfo stored in ctx, if any.
func CallInfoFromContext(ctx context.Context) (CallInfo, bool) {
	info, ok := ctx.Value(callInfoKey{}).(CallInfo)

	return info, ok
}

// SyntheticContext derives the call context used for CLI invocations.
// Cancellation is detached from parent and never triggered.
func SyntheticContext(parent context.Context) context.Context {
	return WithCallInfo(context.WithoutCancel(parent), CallInfo{
		RequestID: SyntheticRequestID,
		Synthetic: true,
	})
}

// NewCallToolRequest builds a tools/call request with no session attached.
func NewCallToolRequest(name string, args map[string]any) (*mcp.CallToolRequest, error) {
	if args == nil {
		args = map[string]any{}
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}

	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: raw,
		},
	}, nil
}

// NewReadResourceRequest builds a resources/read request with no session attached.
func NewReadResourceRequest(uri *url.URL) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri.String()},
	}
}

// ParseResourceURI parses raw as an absolute URI.
func ParseResourceURI(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidURI, err)
	}

	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", errors.ErrInvalidURI, raw)
	}

	return u, nil
}
