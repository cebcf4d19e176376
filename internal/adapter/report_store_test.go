package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "makelift.dev/pkg/makelift/internal/model"
)

func sampleReport() m.ConversionReport {
	return m.ConversionReport{
		Project:     "demo",
		ProjectPath: "/proj",
		EntrySrcs:   []string{"main/app.c"},
		Components: []m.ComponentReport{
			{Path: "/proj/compA", Form: "source-files", Status: m.StatusConverted, SourceCount: 2},
			{Path: "/proj/compB", Status: m.StatusSkipped},
			{Path: "/proj/compC", Status: m.StatusFailed, Error: "boom"},
		},
	}
}

func TestReportStore_RoundTrip(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))
	store := NewYAMLReportStore()

	require.NoError(t, store.SaveReport(path, sampleReport()))

	loaded, err := store.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), loaded)
}

func TestReportStore_OverwritesPreviousReport(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))
	store := NewYAMLReportStore()

	require.NoError(t, store.SaveReport(path, m.ConversionReport{Project: "old"}))
	require.NoError(t, store.SaveReport(path, m.ConversionReport{Project: "new"}))

	loaded, err := store.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.Project)
}

func TestReportStore_LoadMissingFile(t *testing.T) {
	store := NewYAMLReportStore()

	_, err := store.LoadReport(m.Path(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
}

func TestReportStore_LoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("components: [unclosed"), 0o644))

	store := NewYAMLReportStore()

	_, err := store.LoadReport(m.Path(path))
	require.Error(t, err)
}
