package model

// Path represents a file system path.
type Path string

// Well-known file names of the legacy and the generated build trees.
const (
	// ProjectMakefileName is the legacy project descriptor expected at the
	// project root.
	ProjectMakefileName = "Makefile"

	// ComponentMakefileName is the legacy per-component descriptor.
	ComponentMakefileName = "component.mk"

	// TargetDescriptorName is the generated CMake descriptor, both per
	// component and at the project root.
	TargetDescriptorName = "CMakeLists.txt"

	// ComponentWrapperRelPath locates the shared wrapper makefile below the
	// rule-set installation named by EnvRulesPath.
	ComponentWrapperRelPath = "make/component_wrapper.mk"

	// EntryComponentName is the reserved component whose sources become the
	// project-level MAIN_SRCS list.
	EntryComponentName = "main"

	// EnvRulesPath is the environment variable pointing at the shared
	// rule-set installation. It is also embedded verbatim into the include
	// directive of the generated project descriptor.
	EnvRulesPath = "IDF_PATH"
)
