package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makelift.dev/pkg/makelift/internal/adapter"
	m "makelift.dev/pkg/makelift/internal/model"
)

type fakeResolver struct {
	variables m.VariableMap
	err       error

	lastDir       m.Path
	lastMakefile  string
	lastOverrides map[string]string
	lastTolerant  bool
}

func (f *fakeResolver) Resolve(_ context.Context, dir m.Path, makefile string, overrides map[string]string, tolerant bool) (m.VariableMap, error) {
	f.lastDir = dir
	f.lastMakefile = makefile
	f.lastOverrides = overrides
	f.lastTolerant = tolerant

	return f.variables, f.err
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+name+"\n"), 0o644))
	}
}

func newTestNormalizer(resolver VariableResolver, rulesPath string) ComponentNormalizer {
	return NewComponentNormalizer(resolver, adapter.NewLocalProjectFSAdapter(), rulesPath)
}

func TestNormalize_ResolvesThroughWrapperWithOverrides(t *testing.T) {
	componentDir := t.TempDir()
	resolver := &fakeResolver{variables: m.VariableMap{}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	_, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)

	assert.Equal(t, m.Path(componentDir), resolver.lastDir)
	assert.Equal(t, filepath.Join("/opt/rules", "make", "component_wrapper.mk"), resolver.lastMakefile)
	assert.True(t, resolver.lastTolerant)
	assert.Equal(t, map[string]string{
		"COMPONENT_MAKEFILE": filepath.Join(componentDir, "component.mk"),
		"COMPONENT_NAME":     filepath.Base(componentDir),
		"PROJECT_PATH":       "/proj",
	}, resolver.lastOverrides)
}

func TestNormalize_ObjectListConvertedToSources(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "alpha.c", "beta.cpp", "gamma.S")

	resolver := &fakeResolver{variables: m.VariableMap{
		"COMPONENT_OBJS": "alpha.o beta.o gamma.o",
	}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	meta, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha.c", "beta.cpp", "gamma.S"}, meta.SourceFiles)
	assert.Empty(t, meta.Warnings)
}

func TestNormalize_ObjectProbePrefersCOverCppOverAsm(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "multi.c", "multi.cpp", "multi.S")

	resolver := &fakeResolver{variables: m.VariableMap{
		"COMPONENT_OBJS": "multi.o",
	}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	meta, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)
	assert.Equal(t, []string{"multi.c"}, meta.SourceFiles)
}

func TestNormalize_UnresolvableStemWarnsAndOmits(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "kept.c")

	resolver := &fakeResolver{variables: m.VariableMap{
		"COMPONENT_OBJS": "kept.o ghost.o",
	}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	meta, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)

	assert.Equal(t, []string{"kept.c"}, meta.SourceFiles)
	require.Len(t, meta.Warnings, 1)
	assert.Contains(t, meta.Warnings[0], "ghost.o")
}

func TestNormalize_ObjectListInSubdirectory(t *testing.T) {
	componentDir := t.TempDir()
	writeFiles(t, componentDir, "sub/nested.c")

	resolver := &fakeResolver{variables: m.VariableMap{
		"COMPONENT_OBJS": "sub/nested.o",
	}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	meta, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/nested.c"}, meta.SourceFiles)
}

func TestNormalize_DefaultsWithoutObjects(t *testing.T) {
	componentDir := t.TempDir()

	resolver := &fakeResolver{variables: m.VariableMap{}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	meta, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)

	assert.Nil(t, meta.SourceFiles)
	assert.Equal(t, []string{"."}, meta.SourceDirs)
	assert.Equal(t, []string{"include"}, meta.IncludeDirs)
	assert.Nil(t, meta.CompileFlags)
}

func TestNormalize_DeclaredFieldsCarriedThrough(t *testing.T) {
	componentDir := t.TempDir()

	resolver := &fakeResolver{variables: m.VariableMap{
		"COMPONENT_SRCS":            "a.c b.c",
		"COMPONENT_SRCDIRS":         "src port",
		"COMPONENT_ADD_INCLUDEDIRS": "include port/include",
		"CFLAGS":                    "-Wall -Werror",
	}}
	normalizer := newTestNormalizer(resolver, "/proj")

	meta, err := normalizer.Normalize(context.Background(), "/proj", m.Path(componentDir))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.c", "b.c"}, meta.SourceFiles)
	assert.Equal(t, []string{"src", "port"}, meta.SourceDirs)
	assert.Equal(t, []string{"include", "port/include"}, meta.IncludeDirs)
	require.NotNil(t, meta.CompileFlags)
	assert.Equal(t, "-Wall -Werror", *meta.CompileFlags)
}

func TestNormalize_ResolverErrorPropagates(t *testing.T) {
	resolver := &fakeResolver{err: &ResolutionError{Dir: "/proj/compA", Makefile: "wrapper.mk"}}
	normalizer := newTestNormalizer(resolver, "/opt/rules")

	_, err := normalizer.Normalize(context.Background(), "/proj", "/proj/compA")

	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
}
