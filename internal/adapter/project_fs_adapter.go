package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	m "makelift.dev/pkg/makelift/internal/model"
)

// ProjectFSAdapter abstracts filesystem operations the domain layer relies on
// when probing legacy project trees and emitting descriptors. It hides direct
// `os` access so the conversion logic can be tested without touching disk.
type ProjectFSAdapter interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path m.Path) bool

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFileExclusive creates a file with the given content, failing if
	// a file already exists at path.
	WriteFileExclusive(path m.Path, content []byte, perm os.FileMode) error

	// GlobSources returns every file directly inside dir matching one of
	// the extensions (given without the leading dot). Results are cleaned
	// paths in sorted order.
	GlobSources(dir m.Path, extensions []string) ([]m.Path, error)

	// JoinPath joins path elements into a single cleaned path.
	JoinPath(elem ...string) m.Path

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// NormPath returns the lexically cleaned form of path for set
	// comparisons.
	NormPath(path m.Path) m.Path
}

// LocalProjectFSAdapter is the concrete implementation backed by the os and
// path/filepath packages.
type LocalProjectFSAdapter struct{}

// NewLocalProjectFSAdapter constructs a LocalProjectFSAdapter ready to be
// wired into the conversion workflow.
func NewLocalProjectFSAdapter() *LocalProjectFSAdapter {
	return &LocalProjectFSAdapter{}
}

// Exists reports whether path exists on disk.
func (a *LocalProjectFSAdapter) Exists(path m.Path) bool {
	_, err := os.Stat(string(path))
	return err == nil
}

// ReadFile loads file contents from disk.
func (a *LocalProjectFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFileExclusive writes content to a new file, refusing to overwrite an
// existing one.
func (a *LocalProjectFSAdapter) WriteFileExclusive(path m.Path, content []byte, perm os.FileMode) error {
	f, err := os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// GlobSources collects files under dir with any of the given extensions.
func (a *LocalProjectFSAdapter) GlobSources(dir m.Path, extensions []string) ([]m.Path, error) {
	var matches []m.Path

	for _, ext := range extensions {
		pattern := filepath.Join(string(dir), "*."+ext)

		found, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}

		for _, f := range found {
			matches = append(matches, m.Path(filepath.Clean(f)))
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })

	return matches, nil
}

// JoinPath joins path elements into a single path.
func (a *LocalProjectFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// RelPath returns the relative path from base to target.
func (a *LocalProjectFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// NormPath returns the cleaned form of path.
func (a *LocalProjectFSAdapter) NormPath(path m.Path) m.Path {
	return m.Path(filepath.Clean(string(path)))
}
