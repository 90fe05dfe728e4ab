// Package errors renders user-facing failures. Fatal exits funnel through
// here so the stderr prefix and the log record stay consistent.
package errors

import (
	"fmt"
	"os"

	"github.com/amacleod/pulse/internal/logger"
)

// Format renders err for the terminal with the "Error: " prefix. Returns the
// empty string for nil.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr, and exits with code 1. Nil is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal with a format string.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
