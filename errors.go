package mcpdev

import "github.com/wagiedev/mcpdev-go/internal/errors"

// Re-export error types from internal package

// MCPDevError is the base interface for all mcpdev errors.
type MCPDevError = errors.MCPDevError

// RegistrationError indicates the MCP host rejected a tool or resource definition.
type RegistrationError = errors.RegistrationError

// InvocationError indicates a command-line invocation failed.
type InvocationError = errors.InvocationError

// ProcessError indicates a subprocess could not be spawned or awaited.
type ProcessError = errors.ProcessError

// ExecutableNotFoundError indicates an executable needed by a tool was not found.
type ExecutableNotFoundError = errors.ExecutableNotFoundError

// Kind names the registry namespace of a descriptor.
type Kind = errors.Kind

const (
	// KindTool is the tool namespace.
	KindTool = errors.KindTool
	// KindResource is the resource namespace.
	KindResource = errors.KindResource
)

// Re-export sentinel errors from internal package.
var (
	// ErrInvalidConfig indicates an empty server name or version.
	ErrInvalidConfig = errors.ErrInvalidConfig

	// ErrAlreadyConnected indicates Connect was called on a connected server.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrNotConnected indicates an operation requires a live session.
	ErrNotConnected = errors.ErrNotConnected

	// ErrInvalidDescriptor indicates a nil descriptor or a descriptor without a handler.
	ErrInvalidDescriptor = errors.ErrInvalidDescriptor

	// ErrInvalidURI indicates a resource URI could not be parsed.
	ErrInvalidURI = errors.ErrInvalidURI
)
