package model

import "strings"

// VariableMap holds variables resolved for one directory, keyed by name.
// It is produced fresh per resolver invocation and never mutated afterwards.
type VariableMap map[string]string

// Variable names understood by the legacy build system.
const (
	VarProjectName     = "PROJECT_NAME"
	VarComponentPaths  = "COMPONENT_PATHS"
	VarComponentObjs   = "COMPONENT_OBJS"
	VarComponentSrcs   = "COMPONENT_SRCS"
	VarComponentSrcDir = "COMPONENT_SRCDIRS"
	VarIncludeDirs     = "COMPONENT_ADD_INCLUDEDIRS"
	VarCompileFlags    = "CFLAGS"

	// Overrides injected when resolving a component under the shared
	// wrapper rules.
	VarComponentMakefile = "COMPONENT_MAKEFILE"
	VarComponentName     = "COMPONENT_NAME"
	VarProjectPath       = "PROJECT_PATH"
)

// reservedVariables are bookkeeping names make reports for every run. They
// are never surfaced as user variables even when the output marks them as
// directory-level definitions.
var reservedVariables = map[string]struct{}{
	"MAKEFILE_LIST": {},
	"SHELL":         {},
	"CURDIR":        {},
	"MAKEFLAGS":     {},
}

// IsReservedVariable reports whether name belongs to the built-in denylist.
func IsReservedVariable(name string) bool {
	_, ok := reservedVariables[name]
	return ok
}

// Lookup returns the raw value for name and whether it was defined.
func (v VariableMap) Lookup(name string) (string, bool) {
	value, ok := v[name]
	return value, ok
}

// Fields splits the value of name on whitespace. A missing or empty variable
// yields a nil slice.
func (v VariableMap) Fields(name string) []string {
	value, ok := v[name]
	if !ok {
		return nil
	}

	return strings.Fields(value)
}
