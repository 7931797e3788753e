package adapter

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	m "automark.dev/pkg/automark/internal/model"
)

func writeZipFixture(t *testing.T, name string, entries map[string]string) m.Path {
	t.Helper()

	target := filepath.Join(t.TempDir(), name)

	file, err := os.Create(target)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	writer := zip.NewWriter(file)

	for entryName, content := range entries {
		entry, err := writer.Create(entryName)
		if err != nil {
			t.Fatalf("create entry %q: %v", entryName, err)
		}

		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %q: %v", entryName, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	if err := file.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	return m.Path(target)
}

func writeTarGzFixture(t *testing.T, name string, entries map[string]string) m.Path {
	t.Helper()

	target := filepath.Join(t.TempDir(), name)

	file, err := os.Create(target)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	gz := gzip.NewWriter(file)
	tw := tar.NewWriter(gz)

	for entryName, content := range entries {
		header := &tar.Header{
			Name: entryName,
			Mode: 0o644,
			Size: int64(len(content)),
		}

		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write header %q: %v", entryName, err)
		}

		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %q: %v", entryName, err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}

	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}

	if err := file.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	return m.Path(target)
}

func writeGarbageFixture(t *testing.T, name string) m.Path {
	t.Helper()

	target := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(target, []byte("this is not an archive"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return m.Path(target)
}

func collectEntries(t *testing.T, container Container) map[string]string {
	t.Helper()

	entries := map[string]string{}

	err := container.Walk(func(entry ContainerEntry) error {
		rc, err := entry.Open()
		if err != nil {
			return err
		}

		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}

		entries[entry.Path] = string(data)

		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	return entries
}

func TestOpenContainer_Zip(t *testing.T) {
	path := writeZipFixture(t, "sub.zip", map[string]string{
		"report.pdf":  "%PDF",
		"src/main.py": "print('hi')",
	})

	container, err := OpenContainer(path)
	if err != nil {
		t.Fatalf("OpenContainer() error = %v", err)
	}

	defer func() { _ = container.Close() }()

	entries := collectEntries(t, container)
	if entries["report.pdf"] != "%PDF" {
		t.Errorf("report.pdf content = %q", entries["report.pdf"])
	}

	if entries["src/main.py"] != "print('hi')" {
		t.Errorf("src/main.py content = %q", entries["src/main.py"])
	}
}

func TestOpenContainer_TarGz(t *testing.T) {
	path := writeTarGzFixture(t, "sub.tar.gz", map[string]string{
		"hw/solution.py": "pass",
	})

	container, err := OpenContainer(path)
	if err != nil {
		t.Fatalf("OpenContainer() error = %v", err)
	}

	defer func() { _ = container.Close() }()

	entries := collectEntries(t, container)
	if entries["hw/solution.py"] != "pass" {
		t.Errorf("hw/solution.py content = %q", entries["hw/solution.py"])
	}
}

func TestOpenContainer_NormalizesBackslashes(t *testing.T) {
	path := writeZipFixture(t, "sub.zip", map[string]string{
		`hw\solution.py`: "pass",
	})

	container, err := OpenContainer(path)
	if err != nil {
		t.Fatalf("OpenContainer() error = %v", err)
	}

	defer func() { _ = container.Close() }()

	entries := collectEntries(t, container)
	if _, ok := entries["hw/solution.py"]; !ok {
		t.Errorf("expected backslash path to be normalized, got %v", entries)
	}
}

func TestOpenContainer_MalformedZip(t *testing.T) {
	path := writeGarbageFixture(t, "broken.zip")

	_, err := OpenContainer(path)
	if !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("OpenContainer() error = %v, want ErrMalformedContainer", err)
	}
}

func TestOpenContainer_MalformedTarGz(t *testing.T) {
	path := writeGarbageFixture(t, "broken.tar.gz")

	_, err := OpenContainer(path)
	if !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("OpenContainer() error = %v, want ErrMalformedContainer", err)
	}
}

func TestOpenContainer_MalformedPlainTarSurfacesOnWalk(t *testing.T) {
	path := writeGarbageFixture(t, "broken.tar")

	container, err := OpenContainer(path)
	if err != nil {
		t.Fatalf("OpenContainer() error = %v", err)
	}

	defer func() { _ = container.Close() }()

	walkErr := container.Walk(func(ContainerEntry) error { return nil })
	if !IsMalformed(walkErr) {
		t.Fatalf("Walk() error = %v, want malformed class", walkErr)
	}
}

func TestOpenContainer_MalformedRar(t *testing.T) {
	path := writeGarbageFixture(t, "broken.rar")

	_, err := OpenContainer(path)
	if !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("OpenContainer() error = %v, want ErrMalformedContainer", err)
	}
}

func TestOpenContainer_MissingFileIsNotMalformed(t *testing.T) {
	_, err := OpenContainer(m.Path(filepath.Join(t.TempDir(), "absent.zip")))
	if err == nil {
		t.Fatal("OpenContainer() expected error for missing file")
	}

	if errors.Is(err, ErrMalformedContainer) {
		t.Fatal("a missing file must not be classified as malformed")
	}
}

func TestRecognizedExtension(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"123456789.zip", true},
		{"123456789.ZIP", true},
		{"123456789.tar.gz", true},
		{"123456789.tgz", true},
		{"123456789.tar.bz2", true},
		{"123456789.rar", true},
		{"123456789.7z", false},
		{"123456789.txt", false},
	}

	for _, tc := range cases {
		if got := RecognizedExtension(tc.name); got != tc.want {
			t.Errorf("RecognizedExtension(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
