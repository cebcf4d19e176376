package model

// ProjectDescriptor aggregates everything needed to emit the project-level
// build file. It lives only for the duration of one conversion run.
type ProjectDescriptor struct {
	Name string

	// EntryComponentPath is the component whose sources are hoisted into
	// the project descriptor. Empty when the project has no entry
	// component.
	EntryComponentPath Path

	// OtherComponentPaths preserves the legacy resolution order and is not
	// deduplicated.
	OtherComponentPaths []Path

	// EntrySources are the entry component's sources, relative to the
	// project directory.
	EntrySources []string
}
