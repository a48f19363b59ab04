package mcpdev

import "log/slog"

// NopLogger returns the logger a Server uses when WithLogger is not given.
// Records are dropped before formatting.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
