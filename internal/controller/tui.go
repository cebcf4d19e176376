package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	m "makelift.dev/pkg/makelift/internal/model"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	convertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// TUI implements UI using Bubble Tea for interactive display. The conversion
// pipeline stays strictly sequential; the TUI only renders events it is sent.
type TUI struct {
	output  io.Writer
	program *tea.Program
	group   errgroup.Group
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

type componentStartedMsg struct {
	path m.Path
}

type componentFinishedMsg struct {
	report m.ComponentReport
}

type lineMsg struct {
	text string
}

type summaryMsg struct {
	report m.ConversionReport
}

// Start launches the Bubble Tea program on its own goroutine.
func (t *TUI) Start(ctx context.Context, projectPath m.Path, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newConvertModel(projectPath, total)
	t.program = tea.NewProgram(model, tea.WithOutput(t.output))

	t.group.Go(func() error {
		_, err := t.program.Run()
		return err
	})

	return nil
}

// Close stops the program and waits for the render goroutine to finish.
func (t *TUI) Close(ctx context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()

	if err := t.group.Wait(); err != nil {
		slog.Error("TUI terminated with error", "error", err)
	}
}

// ComponentStarted reports that conversion of a component began.
func (t *TUI) ComponentStarted(ctx context.Context, path m.Path) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(componentStartedMsg{path: path})
}

// ComponentFinished reports the outcome for one component.
func (t *TUI) ComponentFinished(ctx context.Context, report m.ComponentReport) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(componentFinishedMsg{report: report})
}

// Notice prints an informational message.
func (t *TUI) Notice(ctx context.Context, format string, args ...any) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(lineMsg{text: fmt.Sprintf(format, args...)})
}

// Warn prints a warning message.
func (t *TUI) Warn(ctx context.Context, format string, args ...any) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(lineMsg{text: warnStyle.Render("WARNING: " + fmt.Sprintf(format, args...))})
}

// Summary displays the final conversion report and quits the program.
func (t *TUI) Summary(ctx context.Context, report m.ConversionReport) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(summaryMsg{report: report})
}

// convertModel is the Bubble Tea model tracking conversion progress.
type convertModel struct {
	spinner  spinner.Model
	project  m.Path
	total    int
	current  m.Path
	done     int
	lines    []string
	report   *m.ConversionReport
	quitting bool
}

func newConvertModel(project m.Path, total int) convertModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return convertModel{
		spinner: s,
		project: project,
		total:   total,
	}
}

func (cm convertModel) Init() tea.Cmd {
	return cm.spinner.Tick
}

func (cm convertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			cm.quitting = true
			return cm, tea.Quit
		}

		return cm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		cm.spinner, cmd = cm.spinner.Update(msg)

		return cm, cmd

	case componentStartedMsg:
		cm.current = msg.path

		return cm, nil

	case componentFinishedMsg:
		cm.current = ""
		cm.done++
		cm.lines = append(cm.lines, formatComponentLine(msg.report))

		return cm, nil

	case lineMsg:
		cm.lines = append(cm.lines, msg.text)

		return cm, nil

	case summaryMsg:
		cm.report = &msg.report
		cm.quitting = true

		return cm, tea.Quit
	}

	return cm, nil
}

func (cm convertModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("makelift: converting %s", cm.project)))

	for _, line := range cm.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case cm.report != nil:
		fmt.Fprintf(&b, "\n%s", renderSummaryTable(*cm.report))
	case !cm.quitting && cm.current != "":
		fmt.Fprintf(&b, "%s converting %s (%d/%d)\n", cm.spinner.View(), cm.current, cm.done+1, cm.total)
	case !cm.quitting:
		fmt.Fprintf(&b, "%s resolving project variables...\n", cm.spinner.View())
	}

	return b.String()
}

func formatComponentLine(report m.ComponentReport) string {
	switch report.Status {
	case m.StatusConverted:
		return convertedStyle.Render(fmt.Sprintf("✓ %s (%s)", report.Path, report.Form))
	case m.StatusSkipped:
		return skippedStyle.Render(fmt.Sprintf("- %s (already converted)", report.Path))
	default:
		return failedStyle.Render(fmt.Sprintf("✗ %s: %s", report.Path, report.Error))
	}
}
