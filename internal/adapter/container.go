// Package adapter contains infrastructure adapters for the automark CLI:
// submission containers, the gradebook store, the scratch directory and the
// external test runner.
package adapter

import (
	"errors"
	"io"
	"strings"

	m "automark.dev/pkg/automark/internal/model"
)

// ErrMalformedContainer marks a container whose bytes are not a valid instance
// of its format. Openers and Walk wrap this error so callers can recover the
// submission as empty instead of failing the run.
var ErrMalformedContainer = errors.New("malformed submission container")

// ContainerEntry is one named file inside a container. Path is normalized to
// '/' separators. Open yields the entry contents; the stream is only valid
// while the walk callback that received the entry is executing.
type ContainerEntry struct {
	Path string
	Open func() (io.ReadCloser, error)
}

// Container lists and opens the entries of one submission archive, hiding the
// underlying format. Walk visits every entry exactly once in container-native
// order.
type Container interface {
	Walk(fn func(entry ContainerEntry) error) error
	Close() error
}

// ContainerOpener opens a container of one specific format from a file.
type ContainerOpener func(path m.Path) (Container, error)

// containerOpeners maps extensions to format variants. Longest extensions are
// listed first so ".tar.gz" wins over ".gz"-style suffix checks.
var containerOpeners = []struct {
	ext  string
	open ContainerOpener
}{
	{".tar.bz2", openTarContainer},
	{".tar.gz", openTarContainer},
	{".tgz", openTarContainer},
	{".tar", openTarContainer},
	{".zip", openZipContainer},
	{".rar", openRarContainer},
}

// RecognizedExtension reports whether a container with the given name would be
// dispatched to a format variant. Detection is by extension convention, not
// content sniffing.
func RecognizedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, opener := range containerOpeners {
		if strings.HasSuffix(lower, opener.ext) {
			return true
		}
	}

	return false
}

// OpenContainer dispatches to the format variant matching the file extension.
// A malformed container yields an error wrapping ErrMalformedContainer; an
// unrecognized extension yields a plain error (callers check extensions with
// RecognizedExtension before extracting).
func OpenContainer(path m.Path) (Container, error) {
	lower := strings.ToLower(string(path))
	for _, opener := range containerOpeners {
		if strings.HasSuffix(lower, opener.ext) {
			return opener.open(path)
		}
	}

	return nil, errors.New("unrecognized container extension: " + string(path))
}

// IsMalformed reports whether an error from OpenContainer or Walk belongs to
// the malformed-container failure class, including decompression errors that
// only surface while an entry's bytes are being read.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedContainer) || isMalformedZip(err) || isMalformedTar(err)
}

// normalizeEntryPath canonicalizes path separators before rule matching.
// Archives produced on Windows may embed backslashes.
func normalizeEntryPath(entryPath string) string {
	return strings.ReplaceAll(entryPath, `\`, "/")
}
