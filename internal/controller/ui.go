// Package controller provides output adapters for displaying conversion
// progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	m "makelift.dev/pkg/makelift/internal/model"
)

// UI defines the interface for reporting conversion progress.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Start initializes the UI for a run over total component directories.
	Start(ctx context.Context, projectPath m.Path, total int) error

	// Close finalizes the UI and releases any resources it holds.
	Close(ctx context.Context)

	// ComponentStarted reports that conversion of a component began.
	ComponentStarted(ctx context.Context, path m.Path)

	// ComponentFinished reports the outcome for one component.
	ComponentFinished(ctx context.Context, report m.ComponentReport)

	// Notice prints an informational message.
	Notice(ctx context.Context, format string, args ...any)

	// Warn prints a warning message.
	Warn(ctx context.Context, format string, args ...any)

	// Summary displays the final conversion report.
	Summary(ctx context.Context, report m.ConversionReport)
}

// NewUI selects the TUI on interactive terminals and the plain printer
// otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
