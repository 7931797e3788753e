package adapter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/nwaples/rardecode/v2"

	m "automark.dev/pkg/automark/internal/model"
)

// rarContainer reads RAR submissions via rardecode. Like tar, the archive is
// a forward-only stream: entry contents must be consumed inside the walk
// callback.
type rarContainer struct {
	path m.Path
	rc   *rardecode.ReadCloser
}

func openRarContainer(path m.Path) (Container, error) {
	rc, err := rardecode.OpenReader(string(path))
	if err != nil {
		if isMalformedRar(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedContainer, path, err)
		}

		return nil, fmt.Errorf("open rar %s: %w", path, err)
	}

	return &rarContainer{path: path, rc: rc}, nil
}

func (c *rarContainer) Walk(fn func(entry ContainerEntry) error) error {
	for {
		header, err := c.rc.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			if isMalformedRar(err) {
				return fmt.Errorf("%w: %s: %v", ErrMalformedContainer, c.path, err)
			}

			return fmt.Errorf("read rar %s: %w", c.path, err)
		}

		if header.IsDir {
			continue
		}

		entry := ContainerEntry{
			Path: normalizeEntryPath(header.Name),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(c.rc), nil
			},
		}

		if err := fn(entry); err != nil {
			return err
		}
	}
}

func (c *rarContainer) Close() error {
	return c.rc.Close()
}

// isMalformedRar reports whether the error belongs to the malformed-container
// class. rardecode surfaces parse failures as package-level errors; anything
// that is not a filesystem error counts as a bad archive.
func isMalformedRar(err error) bool {
	var pathErr *fs.PathError

	return !errors.As(err, &pathErr)
}
