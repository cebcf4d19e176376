// Package domain implements the metadata extraction and translation engine.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"makelift.dev/pkg/makelift/internal/adapter"
	m "makelift.dev/pkg/makelift/internal/model"
)

// VariableResolver resolves the variables defined by a directory's makefile,
// exactly as the legacy build system would have computed them.
type VariableResolver interface {
	// Resolve runs the external evaluator against dir and makefile, with
	// overrides passed as command-line assignments. When tolerant is true a
	// non-zero exit with usable output is not an error; the wrapper rule
	// set is expected to report partial failure for directories lacking
	// optional fields.
	Resolve(ctx context.Context, dir m.Path, makefile string, overrides map[string]string, tolerant bool) (m.VariableMap, error)
}

// makefileDefinitionMarker precedes every variable that the evaluator
// attributes to the makefile itself, as opposed to built-in, environment or
// computed variables.
const makefileDefinitionMarker = "# makefile"

// variableAssignment matches `NAME := VALUE` and `NAME = VALUE` lines.
var variableAssignment = regexp.MustCompile(`^([^ ]+) :?= (.+)$`)

type makeVariableResolver struct {
	runner adapter.MakeRunnerAdapter

	// trace, when non-nil, echoes the evaluator invocation and its raw
	// output for diagnosis.
	trace io.Writer
}

// NewVariableResolver constructs a resolver backed by the provided make
// runner. trace may be nil.
func NewVariableResolver(runner adapter.MakeRunnerAdapter, trace io.Writer) VariableResolver {
	return &makeVariableResolver{runner: runner, trace: trace}
}

// Resolve invokes make in database-dump mode and parses directory-level
// variable definitions out of its output.
func (r *makeVariableResolver) Resolve(ctx context.Context, dir m.Path, makefile string, overrides map[string]string, tolerant bool) (m.VariableMap, error) {
	assignments := formatAssignments(overrides)

	if r.trace != nil {
		fmt.Fprintf(r.trace, "Running make -rpn -C %s -f %s %s...\n", dir, makefile, strings.Join(assignments, " "))
	}

	stdout, stderr, err := r.runner.DumpDatabase(ctx, string(dir), makefile, assignments)

	if r.trace != nil {
		fmt.Fprintf(r.trace, "Make stdout:\n%s\nMake stderr:\n%s\n", stdout, stderr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || !tolerant {
			slog.Error("make invocation failed", "dir", dir, "makefile", makefile, "error", err)

			return nil, &ResolutionError{Dir: dir, Makefile: makefile, Stderr: stderr, Err: err}
		}

		slog.Debug("make exited non-zero, using partial output", "dir", dir, "makefile", makefile)
	}

	variables := parseVariableDump(stdout)
	slog.Debug("resolved variables", "dir", dir, "makefile", makefile, "count", len(variables))

	return variables, nil
}

// parseVariableDump extracts directory-level variable definitions from a
// `make -rpn` database dump. A definition is recognized only on the line
// immediately following a makefile-definition marker; reserved bookkeeping
// names are dropped.
func parseVariableDump(output string) m.VariableMap {
	variables := m.VariableMap{}
	nextIsDefinition := false

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, makefileDefinitionMarker) {
			nextIsDefinition = true
			continue
		}

		if !nextIsDefinition {
			continue
		}

		nextIsDefinition = false

		match := variableAssignment.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		name, value := match[1], match[2]
		if m.IsReservedVariable(name) {
			continue
		}

		variables[name] = strings.TrimRight(value, " \t\r")
	}

	return variables
}

// formatAssignments renders overrides as NAME=VALUE arguments in a stable
// order.
func formatAssignments(overrides map[string]string) []string {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}

	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	for _, name := range names {
		assignments = append(assignments, name+"="+overrides[name])
	}

	return assignments
}
