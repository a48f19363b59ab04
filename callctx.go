package mcpdev

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcpdev-go/internal/mcp"
)

// CallInfo describes the request a handler is serving.
type CallInfo = internalmcp.CallInfo

// SyntheticRequestID is the request identifier of every command-line invocation.
const SyntheticRequestID = internalmcp.SyntheticRequestID

// CallInfoFromContext returns the CallInfo of a command-line invocation.
// It reports false inside a live session.
func CallInfoFromContext(ctx context.Context) (CallInfo, bool) {
	return internalmcp.CallInfoFromContext(ctx)
}

// NotifyProgress sends a progress notification to the client.
//
// It does nothing when session is nil or when the client did not ask for
// progress (token is nil). Command-line invocations carry no token.
func NotifyProgress(
	ctx context.Context,
	session *mcp.ServerSession,
	token any,
	progress, total float64,
	message string,
) error {
	if session == nil || token == nil {
		return nil
	}

	return session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
		ProgressToken: token,
		Progress:      progress,
		Total:         total,
		Message:       message,
	})
}

// LogMessage sends a log message to the client.
// It does nothing when session is nil.
func LogMessage(
	ctx context.Context,
	session *mcp.ServerSession,
	level mcp.LoggingLevel,
	logger string,
	data any,
) error {
	if session == nil {
		return nil
	}

	return session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  level,
		Logger: logger,
		Data:   data,
	})
}
