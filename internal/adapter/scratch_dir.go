package adapter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "automark.dev/pkg/automark/internal/model"
)

// ScratchDir is the working directory that holds the per-student containers
// extracted from the outer archive. It is implementation-owned temporary
// state: cleared at the start of every run, never relied on afterwards.
type ScratchDir interface {
	// Init clears the directory if it exists and recreates it empty.
	Init() error

	// Place writes a per-student container into the directory under the
	// given name and returns its path. Names must be unique per student
	// (student id plus original extension) so runs can fan out safely.
	Place(name string, r io.Reader) (m.Path, error)

	// Root returns the directory path.
	Root() m.Path
}

// LocalScratchDir is the on-disk implementation of ScratchDir.
type LocalScratchDir struct {
	root m.Path
}

// NewLocalScratchDir constructs a LocalScratchDir rooted at the given path.
func NewLocalScratchDir(root m.Path) *LocalScratchDir {
	return &LocalScratchDir{root: root}
}

// Init clears-or-creates the scratch directory.
func (d *LocalScratchDir) Init() error {
	if err := os.RemoveAll(string(d.root)); err != nil {
		return fmt.Errorf("clear scratch dir %s: %w", d.root, err)
	}

	if err := os.MkdirAll(string(d.root), 0o750); err != nil {
		return fmt.Errorf("create scratch dir %s: %w", d.root, err)
	}

	return nil
}

// Place copies the container bytes into the scratch directory.
func (d *LocalScratchDir) Place(name string, r io.Reader) (m.Path, error) {
	target := filepath.Join(string(d.root), name)

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("place %s: %w", name, err)
	}

	_, copyErr := io.Copy(file, r)

	if closeErr := file.Close(); copyErr == nil {
		copyErr = closeErr
	}

	if copyErr != nil {
		return "", fmt.Errorf("place %s: %w", name, copyErr)
	}

	return m.Path(target), nil
}

// Root returns the scratch directory path.
func (d *LocalScratchDir) Root() m.Path {
	return d.root
}
