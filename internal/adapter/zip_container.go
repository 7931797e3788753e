package adapter

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	m "automark.dev/pkg/automark/internal/model"
)

// zipContainer reads ZIP submissions via archive/zip.
type zipContainer struct {
	rc *zip.ReadCloser
}

func openZipContainer(path m.Path) (Container, error) {
	rc, err := zip.OpenReader(string(path))
	if err != nil {
		if isMalformedZip(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedContainer, path, err)
		}

		return nil, fmt.Errorf("open zip %s: %w", path, err)
	}

	return &zipContainer{rc: rc}, nil
}

func (c *zipContainer) Walk(fn func(entry ContainerEntry) error) error {
	for _, file := range c.rc.File {
		if file.FileInfo().IsDir() {
			continue
		}

		entry := ContainerEntry{
			Path: normalizeEntryPath(file.Name),
			Open: file.Open,
		}

		if err := fn(entry); err != nil {
			return err
		}
	}

	return nil
}

func (c *zipContainer) Close() error {
	return c.rc.Close()
}

// isMalformedZip reports whether the error belongs to the "not a valid zip"
// failure class, as opposed to I/O errors such as a missing file.
func isMalformedZip(err error) bool {
	return errors.Is(err, zip.ErrFormat) ||
		errors.Is(err, zip.ErrChecksum) ||
		errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
