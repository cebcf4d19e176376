package domain

import (
	"fmt"

	m "makelift.dev/pkg/makelift/internal/model"
)

// ResolutionError reports an unexpected failure of the external make
// invocation. It is fatal and aborts the run.
type ResolutionError struct {
	Dir      m.Path
	Makefile string
	Stderr   string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving variables in %s via %s: %v", e.Dir, e.Makefile, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// MissingInputError reports absent or incomplete legacy input: a missing
// project directory or descriptor, or a required variable left undefined
// after resolution. It is fatal and aborts the run.
type MissingInputError struct {
	Reason string
}

func (e *MissingInputError) Error() string {
	return e.Reason
}

// AlreadyConvertedError reports that a component already carries a target
// descriptor. It is recoverable: the component is skipped with a notice and
// conversion continues with its siblings. Existing and Rendered carry the
// current file content and the content this run would have generated, so
// callers can show a diff.
type AlreadyConvertedError struct {
	Path     m.Path
	Existing string
	Rendered string
}

func (e *AlreadyConvertedError) Error() string {
	return fmt.Sprintf("component already converted: %s", e.Path)
}

// AlreadyExistsError reports that the project-level target descriptor already
// exists. It is fatal and raised before any project-level write.
type AlreadyExistsError struct {
	Path m.Path
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("project descriptor already exists: %s", e.Path)
}
