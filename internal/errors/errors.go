package errors

import (
	"errors"
	"fmt"
	"strings"
)

// MCPDevError is the base interface for all mcpdev errors.
type MCPDevError interface {
	error
	IsMCPDevError() bool
}

// Compile-time verification that all error types implement MCPDevError.
var (
	_ MCPDevError = (*RegistrationError)(nil)
	_ MCPDevError = (*InvocationError)(nil)
	_ MCPDevError = (*ProcessError)(nil)
	_ MCPDevError = (*ExecutableNotFoundError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrInvalidConfig indicates the server was constructed with an empty name or version.
	ErrInvalidConfig = errors.New("invalid server config")

	// ErrAlreadyConnected indicates Connect was called on a connected server.
	ErrAlreadyConnected = errors.New("server already connected")

	// ErrNotConnected indicates an operation requires a live session.
	ErrNotConnected = errors.New("server not connected")

	// ErrInvalidDescriptor indicates a nil descriptor or a descriptor without a handler.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrInvalidURI indicates a resource URI could not be parsed as an absolute URI.
	ErrInvalidURI = errors.New("invalid resource URI")
)

// Kind names the registry namespace an error belongs to.
type Kind string

const (
	// KindTool is the tool namespace.
	KindTool Kind = "tool"
	// KindResource is the resource namespace.
	KindResource Kind = "resource"
)

// Title returns the kind with its first letter upper-cased, as used in CLI messages.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}

	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// RegistrationError indicates the MCP host rejected a tool or resource definition.
type RegistrationError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to register %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// IsMCPDevError implements MCPDevError.
func (e *RegistrationError) IsMCPDevError() bool { return true }

// InvocationError indicates a CLI test invocation failed inside the adapter,
// the handler, or URI parsing.
type InvocationError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Action(), e.Name, e.Err)
}

// Action describes what the invocation was doing: "calling tool" or
// "reading resource".
func (e *InvocationError) Action() string {
	if e.Kind == KindResource {
		return "reading resource"
	}

	return "calling tool"
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// IsMCPDevError implements MCPDevError.
func (e *InvocationError) IsMCPDevError() bool { return true }

// ProcessError indicates a subprocess could not be spawned or awaited.
// A process that runs and exits non-zero is not a ProcessError.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("process %q failed (exit %d): %v", e.Command, e.ExitCode, e.Err)
	}

	return fmt.Sprintf("process %q failed (exit %d): %s", e.Command, e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsMCPDevError implements MCPDevError.
func (e *ProcessError) IsMCPDevError() bool { return true }

// ExecutableNotFoundError indicates an executable needed by a tool was not found.
type ExecutableNotFoundError struct {
	Name          string
	SearchedPaths []string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in: %v", e.Name, e.SearchedPaths)
}

// IsMCPDevError implements MCPDevError.
func (e *ExecutableNotFoundError) IsMCPDevError() bool { return true }
