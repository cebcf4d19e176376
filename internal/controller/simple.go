package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "makelift.dev/pkg/makelift/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start announces the run.
func (s *SimpleUI) Start(ctx context.Context, projectPath m.Path, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Converting %s (%d component(s))...\n", projectPath, total)

	return nil
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// ComponentStarted reports that conversion of a component began.
func (s *SimpleUI) ComponentStarted(ctx context.Context, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Converting %s...\n", path)
}

// ComponentFinished reports the outcome for one component.
func (s *SimpleUI) ComponentFinished(ctx context.Context, report m.ComponentReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch report.Status {
	case m.StatusConverted:
		s.printf("Converted %s (%s)\n", report.Path, report.Form)
	case m.StatusSkipped:
		s.printf("Skipping already-converted component %s\n", report.Path)
	case m.StatusFailed:
		s.printf("Failed to convert %s: %s\n", report.Path, report.Error)
	}
}

// Notice prints an informational message.
func (s *SimpleUI) Notice(ctx context.Context, format string, args ...any) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf(format+"\n", args...)
}

// Warn prints a warning message.
func (s *SimpleUI) Warn(ctx context.Context, format string, args ...any) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("WARNING: "+format+"\n", args...)
}

// Summary prints the final conversion report as a table.
func (s *SimpleUI) Summary(ctx context.Context, report m.ConversionReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(report))
}

func renderSummaryTable(report m.ConversionReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Component", "Form", "Sources", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, component := range report.Components {
		table.Append([]string{
			component.Path,
			component.Form,
			fmt.Sprintf("%d", component.SourceCount),
			component.Status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Project %s", report.Project),
		"",
		"",
		fmt.Sprintf("%d converted / %d skipped / %d failed",
			report.Converted(), report.Skipped(), report.Failed()),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
