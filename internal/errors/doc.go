// Package errors defines error types for mcpdev.
//
// This package provides sentinel errors for conditions callers commonly check
// and structured error types for registration, CLI invocation, and subprocess
// failures. All error types support error unwrapping and can be checked using
// errors.Is, errors.As, and errors.AsType.
package errors
