package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. Services take a
// logger as a hard dependency, so tests use this instead of nil.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
