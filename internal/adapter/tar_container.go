package adapter

import (
	"archive/tar"
	"compress/bzip2"
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	m "automark.dev/pkg/automark/internal/model"
)

// tarContainer reads TAR submissions, optionally compressed with gzip or
// bzip2. The compression is chosen by extension; tar streams cannot be
// random-accessed, so entry contents must be consumed inside the walk
// callback, before the next entry is advanced to.
type tarContainer struct {
	file   *os.File
	stream io.Reader
}

func openTarContainer(path m.Path) (Container, error) {
	file, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("open tar %s: %w", path, err)
	}

	var stream io.Reader = file

	lower := strings.ToLower(string(path))

	switch {
	case strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz"):
		gz, gzErr := gzip.NewReader(file)
		if gzErr != nil {
			_ = file.Close()
			if isMalformedTar(gzErr) {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedContainer, path, gzErr)
			}

			return nil, fmt.Errorf("open gzip %s: %w", path, gzErr)
		}

		stream = gz
	case strings.HasSuffix(lower, ".tar.bz2"):
		stream = bzip2.NewReader(file)
	}

	return &tarContainer{file: file, stream: stream}, nil
}

func (c *tarContainer) Walk(fn func(entry ContainerEntry) error) error {
	reader := tar.NewReader(c.stream)

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			if isMalformedTar(err) {
				return fmt.Errorf("%w: %s: %v", ErrMalformedContainer, c.file.Name(), err)
			}

			return fmt.Errorf("read tar %s: %w", c.file.Name(), err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		entry := ContainerEntry{
			Path: normalizeEntryPath(header.Name),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(reader), nil
			},
		}

		if err := fn(entry); err != nil {
			return err
		}
	}
}

func (c *tarContainer) Close() error {
	return c.file.Close()
}

// isMalformedTar reports whether the error belongs to the malformed-container
// class for tar streams and their compression wrappers.
func isMalformedTar(err error) bool {
	var structural bzip2.StructuralError
	var corrupt flate.CorruptInputError

	return errors.Is(err, tar.ErrHeader) ||
		errors.Is(err, gzip.ErrHeader) ||
		errors.Is(err, gzip.ErrChecksum) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &structural) ||
		errors.As(err, &corrupt)
}
