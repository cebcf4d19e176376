package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makelift.dev/pkg/makelift/internal/adapter"
	m "makelift.dev/pkg/makelift/internal/model"
)

func classify(t *testing.T, componentDir string, meta m.ComponentMetadata) m.EmissionForm {
	t.Helper()

	classifier := NewEquivalenceClassifier(adapter.NewLocalProjectFSAdapter())

	form, err := classifier.Classify(m.Path(componentDir), meta)
	require.NoError(t, err)

	return form
}

func TestClassify_NoSourcesIsConfigOnly(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "ignored.c")

	form := classify(t, componentDir, m.ComponentMetadata{})
	assert.Equal(t, m.FormConfigOnly, form)
}

func TestClassify_ExactMatchCollapsesToSourceDirs(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "a.c", "b.cpp", "c.S")

	meta := m.ComponentMetadata{
		SourceFiles: []string{"a.c", "b.cpp", "c.S"},
	}

	assert.Equal(t, m.FormSourceDirs, classify(t, componentDir, meta))
}

func TestClassify_SubsetKeepsExplicitList(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "a.c", "b.c")

	meta := m.ComponentMetadata{
		SourceFiles: []string{"a.c"},
	}

	assert.Equal(t, m.FormSourceFiles, classify(t, componentDir, meta))
}

func TestClassify_SupersetKeepsExplicitList(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "a.c")

	meta := m.ComponentMetadata{
		SourceFiles: []string{"a.c", "missing.c"},
	}

	assert.Equal(t, m.FormSourceFiles, classify(t, componentDir, meta))
}

func TestClassify_UnrecognizedExtensionNotGlobbed(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "a.c", "notes.txt", "gen.py")

	meta := m.ComponentMetadata{
		SourceFiles: []string{"a.c"},
	}

	assert.Equal(t, m.FormSourceDirs, classify(t, componentDir, meta))
}

func TestClassify_MultiDirUnionMustMatchExactly(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "src/a.c", "port/b.c", "port/extra.c")

	// The explicit list covers src completely but only part of port, so
	// the union comparison must reject the directory form.
	partial := m.ComponentMetadata{
		SourceFiles: []string{"src/a.c", "port/b.c"},
		SourceDirs:  []string{"src", "port"},
	}
	assert.Equal(t, m.FormSourceFiles, classify(t, componentDir, partial))

	full := m.ComponentMetadata{
		SourceFiles: []string{"src/a.c", "port/b.c", "port/extra.c"},
		SourceDirs:  []string{"src", "port"},
	}
	assert.Equal(t, m.FormSourceDirs, classify(t, componentDir, full))
}

func TestClassify_PathsComparedAfterNormalization(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "a.c")

	meta := m.ComponentMetadata{
		SourceFiles: []string{"./a.c"},
	}

	assert.Equal(t, m.FormSourceDirs, classify(t, componentDir, meta))
}

func TestClassify_EmptyExplicitListAgainstEmptyDirs(t *testing.T) {
	componentDir := t.TempDir()

	// Present-but-empty source list over a directory with no recognized
	// sources: both sets are empty, so the directory form wins.
	meta := m.ComponentMetadata{
		SourceFiles: []string{},
	}

	assert.Equal(t, m.FormSourceDirs, classify(t, componentDir, meta))
}

func TestClassify_DefaultsSourceDirsToDot(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "only.c")

	meta := m.ComponentMetadata{
		SourceFiles: []string{"only.c"},
	}

	assert.Equal(t, m.FormSourceDirs, classify(t, componentDir, meta))
	assert.Equal(t, []string{"."}, meta.EffectiveSourceDirs())
}
