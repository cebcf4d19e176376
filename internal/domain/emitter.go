package domain

import (
	"fmt"
	"log/slog"
	"strings"

	"makelift.dev/pkg/makelift/internal/adapter"
	m "makelift.dev/pkg/makelift/internal/model"
)

// DescriptorEmitter renders normalized component metadata and the project
// descriptor into the target CMake syntax and writes them to disk. Existing
// descriptors are never overwritten.
type DescriptorEmitter interface {
	EmitComponent(componentPath m.Path, meta m.ComponentMetadata, form m.EmissionForm) error
	EmitProject(projectPath m.Path, projectName string, entrySources []string) error
}

type descriptorEmitter struct {
	fs adapter.ProjectFSAdapter
}

// NewDescriptorEmitter constructs a DescriptorEmitter backed by the provided
// filesystem adapter.
func NewDescriptorEmitter(fs adapter.ProjectFSAdapter) DescriptorEmitter {
	return &descriptorEmitter{fs: fs}
}

// EmitComponent writes the component descriptor. If one already exists the
// component is considered migrated and an AlreadyConvertedError carrying both
// the existing and the freshly rendered content is returned.
func (e *descriptorEmitter) EmitComponent(componentPath m.Path, meta m.ComponentMetadata, form m.EmissionForm) error {
	target := e.fs.JoinPath(string(componentPath), m.TargetDescriptorName)
	rendered := renderComponent(meta, form)

	if e.fs.Exists(target) {
		existing, err := e.fs.ReadFile(target)
		if err != nil {
			slog.Warn("could not read existing descriptor", "path", target, "error", err)
		}

		return &AlreadyConvertedError{Path: target, Existing: string(existing), Rendered: rendered}
	}

	if err := e.fs.WriteFileExclusive(target, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("emit component descriptor: %w", err)
	}

	slog.Info("converted component", "path", target, "form", form.String())

	return nil
}

// EmitProject writes the project-level descriptor. The caller is expected to
// have fully resolved name and sources beforehand so a failure here leaves no
// partial project descriptor behind.
func (e *descriptorEmitter) EmitProject(projectPath m.Path, projectName string, entrySources []string) error {
	target := e.fs.JoinPath(string(projectPath), m.TargetDescriptorName)

	if e.fs.Exists(target) {
		return &AlreadyExistsError{Path: target}
	}

	if err := e.fs.WriteFileExclusive(target, []byte(renderProject(projectName, entrySources)), 0o644); err != nil {
		return fmt.Errorf("emit project descriptor: %w", err)
	}

	slog.Info("converted project", "path", target, "name", projectName)

	return nil
}

// renderComponent produces the component descriptor text: the include-dirs
// declaration, then exactly one of a source-dirs declaration, a source-files
// declaration or neither, then the matching registration directive, then the
// compile options when flags were present.
func renderComponent(meta m.ComponentMetadata, form m.EmissionForm) string {
	var b strings.Builder

	fmt.Fprintf(&b, "set(COMPONENT_ADD_INCLUDEDIRS %s)\n\n", strings.Join(meta.IncludeDirs, " "))

	switch form {
	case m.FormSourceDirs:
		fmt.Fprintf(&b, "set(COMPONENT_SRCDIRS %s)\n\n", strings.Join(meta.EffectiveSourceDirs(), " "))
		b.WriteString("register_component()\n")
	case m.FormSourceFiles:
		fmt.Fprintf(&b, "set(COMPONENT_SRCS %s)\n\n", strings.Join(meta.SourceFiles, " "))
		b.WriteString("register_component()\n")
	case m.FormConfigOnly:
		b.WriteString("register_config_only_component()\n")
	}

	if meta.CompileFlags != nil {
		fmt.Fprintf(&b, "component_compile_options(%s)\n", *meta.CompileFlags)
	}

	return b.String()
}

// renderProject produces the project descriptor text: fixed boilerplate, the
// entry component's source list, the include of the shared build rules, and
// the project name declaration.
func renderProject(projectName string, entrySources []string) string {
	var b strings.Builder

	b.WriteString(`
# (Automatically converted from project Makefile by makelift.)

# The following four lines of boilerplate have to be in your project's CMakeLists
# in this exact order for cmake to work correctly
cmake_minimum_required(VERSION 3.5)

`)
	fmt.Fprintf(&b, "set(MAIN_SRCS %s)\n", strings.Join(entrySources, " "))
	fmt.Fprintf(&b, "\ninclude($ENV{%s}/tools/cmake/project.cmake)\n", m.EnvRulesPath)
	fmt.Fprintf(&b, "project(%s)\n", projectName)

	return b.String()
}
