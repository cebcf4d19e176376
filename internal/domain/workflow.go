package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"makelift.dev/pkg/makelift/internal/adapter"
	"makelift.dev/pkg/makelift/internal/controller"
	m "makelift.dev/pkg/makelift/internal/model"
)

// Workflow drives the conversion of one legacy project tree.
type Workflow interface {
	ConvertProject(ctx context.Context, projectPath m.Path) (m.ConversionReport, error)
}

// WorkflowOptions holds per-run settings threaded through from the CLI.
type WorkflowOptions struct {
	// ShowDiff diffs an already-converted descriptor against the content
	// this run would have generated.
	ShowDiff bool

	// ReportPath is where the conversion report is persisted. Empty
	// disables report persistence.
	ReportPath m.Path
}

type workflow struct {
	resolver   VariableResolver
	normalizer ComponentNormalizer
	classifier EquivalenceClassifier
	emitter    DescriptorEmitter
	fs         adapter.ProjectFSAdapter
	reports    adapter.ReportStore
	ui         controller.UI
	opts       WorkflowOptions
}

// NewWorkflow constructs the conversion pipeline from its collaborators.
func NewWorkflow(
	resolver VariableResolver,
	normalizer ComponentNormalizer,
	classifier EquivalenceClassifier,
	emitter DescriptorEmitter,
	fs adapter.ProjectFSAdapter,
	reports adapter.ReportStore,
	ui controller.UI,
	opts WorkflowOptions,
) Workflow {
	return &workflow{
		resolver:   resolver,
		normalizer: normalizer,
		classifier: classifier,
		emitter:    emitter,
		fs:         fs,
		reports:    reports,
		ui:         ui,
		opts:       opts,
	}
}

// ConvertProject converts every component of the project and finally emits
// the project-level descriptor. Components are converted one at a time, in
// the order the legacy resolution reported them. All project-level lookups
// happen before the project descriptor is written, so a fatal error never
// leaves a partially written project file behind.
func (w *workflow) ConvertProject(ctx context.Context, projectPath m.Path) (m.ConversionReport, error) {
	report := m.ConversionReport{ProjectPath: string(projectPath)}

	if !w.fs.Exists(projectPath) {
		return report, &MissingInputError{Reason: fmt.Sprintf("project directory %s not found", projectPath)}
	}

	if !w.fs.Exists(w.fs.JoinPath(string(projectPath), m.ProjectMakefileName)) {
		return report, &MissingInputError{Reason: fmt.Sprintf("directory %s doesn't contain a project %s", projectPath, m.ProjectMakefileName)}
	}

	if target := w.fs.JoinPath(string(projectPath), m.TargetDescriptorName); w.fs.Exists(target) {
		return report, &AlreadyExistsError{Path: target}
	}

	// The project rule set is expected to fail partway once the component
	// includes run, so a non-zero exit is tolerated.
	projectVars, err := w.resolver.Resolve(ctx, projectPath, m.ProjectMakefileName, nil, true)
	if err != nil {
		return report, err
	}

	descriptor, err := buildProjectDescriptor(projectPath, projectVars)
	if err != nil {
		return report, err
	}

	report.Project = descriptor.Name

	if err := w.ui.Start(ctx, projectPath, len(descriptor.OtherComponentPaths)); err != nil {
		return report, err
	}
	defer w.ui.Close(ctx)

	if err := w.resolveEntrySources(ctx, projectPath, descriptor); err != nil {
		return report, err
	}

	report.EntrySrcs = descriptor.EntrySources

	for _, componentPath := range descriptor.OtherComponentPaths {
		componentReport, err := w.convertComponent(ctx, projectPath, componentPath)
		if err != nil {
			return report, err
		}

		report.Components = append(report.Components, componentReport)
		w.ui.ComponentFinished(ctx, componentReport)
	}

	if err := w.emitter.EmitProject(projectPath, descriptor.Name, descriptor.EntrySources); err != nil {
		return report, err
	}

	w.saveReport(ctx, projectPath, report)
	w.ui.Summary(ctx, report)

	return report, nil
}

// buildProjectDescriptor validates the resolved project variables and splits
// the component list into the entry component and everything else. Legacy
// order is preserved and nothing is deduplicated.
func buildProjectDescriptor(projectPath m.Path, projectVars m.VariableMap) (*m.ProjectDescriptor, error) {
	name, ok := projectVars.Lookup(m.VarProjectName)
	if !ok {
		return nil, &MissingInputError{
			Reason: fmt.Sprintf("%s does not appear to be defined in the project %s at %s",
				m.VarProjectName, m.ProjectMakefileName, projectPath),
		}
	}

	if _, ok := projectVars.Lookup(m.VarComponentPaths); !ok {
		return nil, &MissingInputError{
			Reason: fmt.Sprintf("%s does not appear to be defined in the project %s at %s",
				m.VarComponentPaths, m.ProjectMakefileName, projectPath),
		}
	}

	descriptor := &m.ProjectDescriptor{Name: name}

	for _, path := range projectVars.Fields(m.VarComponentPaths) {
		if filepath.Base(path) == m.EntryComponentName && descriptor.EntryComponentPath == "" {
			descriptor.EntryComponentPath = m.Path(path)
			continue
		}

		descriptor.OtherComponentPaths = append(descriptor.OtherComponentPaths, m.Path(path))
	}

	return descriptor, nil
}

// resolveEntrySources resolves the entry component and rewrites its sources
// relative to the project directory. A project without an entry component
// proceeds with an empty source list.
func (w *workflow) resolveEntrySources(ctx context.Context, projectPath m.Path, descriptor *m.ProjectDescriptor) error {
	if descriptor.EntryComponentPath == "" {
		w.ui.Warn(ctx, "project has no '%s' component, continuing with an empty %s source list",
			m.EntryComponentName, m.TargetDescriptorName)
		slog.Warn("no entry component found", "project", projectPath)

		return nil
	}

	meta, err := w.normalizer.Normalize(ctx, projectPath, descriptor.EntryComponentPath)
	if err != nil {
		return err
	}

	for _, warning := range meta.Warnings {
		w.ui.Warn(ctx, "%s", warning)
	}

	for _, src := range meta.SourceFiles {
		abs := w.fs.NormPath(w.fs.JoinPath(string(descriptor.EntryComponentPath), src))

		rel, err := w.fs.RelPath(projectPath, abs)
		if err != nil {
			return fmt.Errorf("entry source %s: %w", src, err)
		}

		descriptor.EntrySources = append(descriptor.EntrySources, string(rel))
	}

	return nil
}

// convertComponent runs the resolve/normalize/classify/emit pipeline for one
// component. Recoverable conditions are folded into the component report; the
// returned error is non-nil only for failures that must abort the whole run.
func (w *workflow) convertComponent(ctx context.Context, projectPath, componentPath m.Path) (m.ComponentReport, error) {
	componentReport := m.ComponentReport{Path: string(componentPath)}

	w.ui.ComponentStarted(ctx, componentPath)

	meta, err := w.normalizer.Normalize(ctx, projectPath, componentPath)
	if err != nil {
		var resolution *ResolutionError
		if errors.As(err, &resolution) {
			return componentReport, err
		}

		componentReport.Status = m.StatusFailed
		componentReport.Error = err.Error()

		return componentReport, nil
	}

	componentReport.Warnings = meta.Warnings
	for _, warning := range meta.Warnings {
		w.ui.Warn(ctx, "%s", warning)
	}

	form, err := w.classifier.Classify(componentPath, meta)
	if err != nil {
		componentReport.Status = m.StatusFailed
		componentReport.Error = err.Error()

		return componentReport, nil
	}

	componentReport.Form = form.String()
	componentReport.SourceCount = len(meta.SourceFiles)

	if err := w.emitter.EmitComponent(componentPath, meta, form); err != nil {
		var converted *AlreadyConvertedError
		if errors.As(err, &converted) {
			componentReport.Status = m.StatusSkipped
			w.showConvertedDiff(ctx, converted)

			return componentReport, nil
		}

		componentReport.Status = m.StatusFailed
		componentReport.Error = err.Error()

		return componentReport, nil
	}

	componentReport.Status = m.StatusConverted

	return componentReport, nil
}

// showConvertedDiff prints what would have changed in an already-converted
// descriptor, so stale conversions can be audited.
func (w *workflow) showConvertedDiff(ctx context.Context, converted *AlreadyConvertedError) {
	if !w.opts.ShowDiff {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(converted.Existing),
		B:        difflib.SplitLines(converted.Rendered),
		FromFile: string(converted.Path),
		ToFile:   string(converted.Path) + " (regenerated)",
		Context:  3,
	})
	if err != nil {
		slog.Warn("could not diff existing descriptor", "path", converted.Path, "error", err)
		return
	}

	if diff == "" {
		w.ui.Notice(ctx, "%s matches what this run would generate", converted.Path)
		return
	}

	w.ui.Notice(ctx, "%s differs from what this run would generate:\n%s", converted.Path, diff)
}

func (w *workflow) saveReport(ctx context.Context, projectPath m.Path, report m.ConversionReport) {
	if w.opts.ReportPath == "" {
		return
	}

	if err := w.reports.SaveReport(w.opts.ReportPath, report); err != nil {
		slog.Warn("could not save conversion report", "path", w.opts.ReportPath, "error", err)
		w.ui.Warn(ctx, "could not save conversion report: %v", err)
	}
}
