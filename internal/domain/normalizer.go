package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"makelift.dev/pkg/makelift/internal/adapter"
	m "makelift.dev/pkg/makelift/internal/model"
)

// ComponentNormalizer derives the canonical metadata record for a component
// directory from its resolved variables.
type ComponentNormalizer interface {
	Normalize(ctx context.Context, projectPath, componentPath m.Path) (m.ComponentMetadata, error)
}

type componentNormalizer struct {
	resolver VariableResolver
	fs       adapter.ProjectFSAdapter

	// rulesPath is the shared rule-set installation ($IDF_PATH) holding
	// the wrapper makefile components are resolved through.
	rulesPath string
}

// NewComponentNormalizer constructs a ComponentNormalizer resolving
// components through the wrapper makefile under rulesPath.
func NewComponentNormalizer(resolver VariableResolver, fs adapter.ProjectFSAdapter, rulesPath string) ComponentNormalizer {
	return &componentNormalizer{
		resolver:  resolver,
		fs:        fs,
		rulesPath: rulesPath,
	}
}

// Normalize resolves the component under the shared wrapper rules and applies
// the fallback defaults. Object-file lists are converted to source lists by
// probing for a file sharing the stem; stems with no source on disk are
// dropped with a warning rather than failing the conversion.
func (n *componentNormalizer) Normalize(ctx context.Context, projectPath, componentPath m.Path) (m.ComponentMetadata, error) {
	wrapper := n.fs.JoinPath(n.rulesPath, m.ComponentWrapperRelPath)

	overrides := map[string]string{
		m.VarComponentMakefile: string(n.fs.JoinPath(string(componentPath), m.ComponentMakefileName)),
		m.VarComponentName:     filepath.Base(string(componentPath)),
		m.VarProjectPath:       string(projectPath),
	}

	// The wrapper rule set reports partial failure for components lacking
	// optional fields, so a non-zero exit is tolerated here.
	variables, err := n.resolver.Resolve(ctx, componentPath, string(wrapper), overrides, true)
	if err != nil {
		return m.ComponentMetadata{}, err
	}

	meta := m.ComponentMetadata{
		SourceDirs: variables.Fields(m.VarComponentSrcDir),
	}

	if objs, ok := variables.Lookup(m.VarComponentObjs); ok {
		meta.SourceFiles, meta.Warnings = n.sourcesFromObjects(componentPath, objs)
	} else {
		if srcs, ok := variables.Lookup(m.VarComponentSrcs); ok {
			meta.SourceFiles = strings.Fields(srcs)
		}

		if meta.SourceDirs == nil {
			meta.SourceDirs = []string{"."}
		}
	}

	meta.IncludeDirs = variables.Fields(m.VarIncludeDirs)
	if meta.IncludeDirs == nil {
		meta.IncludeDirs = []string{"include"}
	}

	if flags, ok := variables.Lookup(m.VarCompileFlags); ok {
		meta.CompileFlags = &flags
	}

	return meta, nil
}

// sourcesFromObjects maps each object-file stem to the source file it was
// built from, trying the recognized extensions in priority order within the
// component directory.
func (n *componentNormalizer) sourcesFromObjects(componentPath m.Path, objs string) ([]string, []string) {
	sources := []string{}

	var warnings []string

	for _, obj := range strings.Fields(objs) {
		stem := strings.TrimSuffix(obj, filepath.Ext(obj))

		found := ""

		for _, ext := range m.SourceExtensions {
			candidate := stem + "." + ext
			if n.fs.Exists(n.fs.JoinPath(string(componentPath), candidate)) {
				found = candidate
				break
			}
		}

		if found == "" {
			warning := fmt.Sprintf("can't find source file for object %s in %s", obj, componentPath)
			slog.Warn("unresolvable object stem", "component", componentPath, "object", obj)
			warnings = append(warnings, warning)

			continue
		}

		sources = append(sources, found)
	}

	return sources, warnings
}
