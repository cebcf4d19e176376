package domain

import (
	"log/slog"

	"makelift.dev/pkg/makelift/internal/adapter"
	m "makelift.dev/pkg/makelift/internal/model"
)

// EquivalenceClassifier decides which declarative form best represents a
// component's original intent.
type EquivalenceClassifier interface {
	Classify(componentPath m.Path, meta m.ComponentMetadata) (m.EmissionForm, error)
}

type equivalenceClassifier struct {
	fs adapter.ProjectFSAdapter
}

// NewEquivalenceClassifier constructs an EquivalenceClassifier backed by the
// provided filesystem adapter.
func NewEquivalenceClassifier(fs adapter.ProjectFSAdapter) EquivalenceClassifier {
	return &equivalenceClassifier{fs: fs}
}

// Classify compares the explicit source list against globbing every
// recognized source extension across the declared source directories. An
// exact whole-set match selects the terser directory form; any difference
// keeps the explicit list verbatim. Components without a source list at all
// are config-only.
//
// The comparison is deliberately conservative: the union of all declared
// directories is matched against the full explicit list, so a list spanning
// several directories only collapses when all of their combined globs match
// exactly.
func (c *equivalenceClassifier) Classify(componentPath m.Path, meta m.ComponentMetadata) (m.EmissionForm, error) {
	if meta.SourceFiles == nil {
		return m.FormConfigOnly, nil
	}

	globbed := map[m.Path]struct{}{}

	for _, dir := range meta.EffectiveSourceDirs() {
		matches, err := c.fs.GlobSources(c.fs.JoinPath(string(componentPath), dir), m.SourceExtensions)
		if err != nil {
			return m.FormSourceFiles, err
		}

		for _, match := range matches {
			globbed[c.fs.NormPath(match)] = struct{}{}
		}
	}

	explicit := map[m.Path]struct{}{}
	for _, src := range meta.SourceFiles {
		explicit[c.fs.NormPath(c.fs.JoinPath(string(componentPath), src))] = struct{}{}
	}

	if setsEqual(globbed, explicit) {
		slog.Debug("explicit sources match directory glob", "component", componentPath)
		return m.FormSourceDirs, nil
	}

	return m.FormSourceFiles, nil
}

func setsEqual(a, b map[m.Path]struct{}) bool {
	if len(a) != len(b) {
		return false
	}

	for key := range a {
		if _, ok := b[key]; !ok {
			return false
		}
	}

	return true
}
