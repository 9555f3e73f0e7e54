//go:build unit || e2e

package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger drops everything; pass it wherever a component wants a logger.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
