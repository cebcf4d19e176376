package model

// SourceExtensions lists the recognized source file extensions, in the
// priority order used when probing for a source matching an object stem. The
// same set drives directory globbing in the equivalence check.
var SourceExtensions = []string{"c", "cpp", "S"}

// ComponentMetadata is the canonical per-directory record derived from
// resolved variables. A nil SourceFiles slice means the component declared no
// explicit file list; a non-nil empty slice means it declared one that
// resolved to nothing. SourceDirs nil means the declaration was absent and
// the "." default applies.
type ComponentMetadata struct {
	SourceFiles  []string
	SourceDirs   []string
	IncludeDirs  []string
	CompileFlags *string

	// Warnings collects non-fatal findings (e.g. object stems with no
	// source on disk) for the report and the UI.
	Warnings []string
}

// EffectiveSourceDirs returns the declared source directories, falling back
// to the component directory itself when none were declared.
func (c ComponentMetadata) EffectiveSourceDirs() []string {
	if c.SourceDirs == nil {
		return []string{"."}
	}

	return c.SourceDirs
}

// EmissionForm selects which declarative shape a component descriptor takes.
type EmissionForm int

const (
	// FormSourceDirs emits directory-driven source discovery. Chosen when
	// the explicit file list is set-equivalent to globbing the declared
	// source directories.
	FormSourceDirs EmissionForm = iota

	// FormSourceFiles emits the explicit file list verbatim.
	FormSourceFiles

	// FormConfigOnly emits a registration-only descriptor for components
	// with no determinable sources.
	FormConfigOnly
)

func (f EmissionForm) String() string {
	switch f {
	case FormSourceDirs:
		return "source-dirs"
	case FormSourceFiles:
		return "source-files"
	case FormConfigOnly:
		return "config-only"
	}

	return "unknown"
}
