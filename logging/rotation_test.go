package logging

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dablenparty/dablenutil"
	"github.com/spf13/afero"
)

// stubCreationTime makes every file report ts as its creation time, or no
// creation time at all when ok is false.
func stubCreationTime(t *testing.T, ts time.Time, ok bool) {
	t.Helper()
	old := creationTime
	creationTime = func(afero.Fs, string) (time.Time, bool) { return ts, ok }
	t.Cleanup(func() { creationTime = old })
}

func stubNow(t *testing.T, ts time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = old })
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func gunzip(t *testing.T, path string) ([]byte, string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer func() { _ = f.Close() }()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("archive is not gzip: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	return data, zr.Name
}

func TestRotate(t *testing.T) {
	created := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

	t.Run("empty folder produces no archive", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")

		path, err := Rotate(NewConfig(dir))
		if err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}

		if path != filepath.Join(dir, "latest.log") {
			t.Errorf("Rotate returned %q", path)
		}
		if names := listDir(t, dir); len(names) != 0 {
			t.Errorf("expected empty folder, got %v", names)
		}
	})

	t.Run("archives existing log", func(t *testing.T) {
		stubCreationTime(t, created, true)
		dir := t.TempDir()
		content := []byte("first line\nsecond line\n")
		if err := os.WriteFile(filepath.Join(dir, "latest.log"), content, 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		path, err := Rotate(NewConfig(dir).WithPackageName("myapp"))
		if err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("latest.log should be gone after rotation, stat err = %v", err)
		}

		names := listDir(t, dir)
		if len(names) != 1 || names[0] != "myapp_2024-03-09_14-05-07.log.gz" {
			t.Fatalf("expected exactly one archive, got %v", names)
		}

		data, storedName := gunzip(t, filepath.Join(dir, names[0]))
		if !bytes.Equal(data, content) {
			t.Errorf("archive content = %q, want %q", data, content)
		}
		if storedName != "myapp_2024-03-09_14-05-07.log" {
			t.Errorf("gzip header name = %q", storedName)
		}
	})

	t.Run("empty prefix has no leading separator", func(t *testing.T) {
		stubCreationTime(t, created, true)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "latest.log"), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		if _, err := Rotate(NewConfig(dir)); err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}

		names := listDir(t, dir)
		if len(names) != 1 || names[0] != "2024-03-09_14-05-07.log.gz" {
			t.Errorf("expected 2024-03-09_14-05-07.log.gz, got %v", names)
		}
	})

	t.Run("custom file name", func(t *testing.T) {
		stubCreationTime(t, created, true)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "session.log"), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "latest.log"), []byte("untouched"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		path, err := Rotate(NewConfig(dir).WithFileName("session.log"))
		if err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}
		if filepath.Base(path) != "session.log" {
			t.Errorf("Rotate returned %q", path)
		}
		if _, err := os.Stat(filepath.Join(dir, "latest.log")); err != nil {
			t.Errorf("unrelated latest.log should remain: %v", err)
		}
	})

	t.Run("falls back to now without creation time", func(t *testing.T) {
		stubCreationTime(t, time.Time{}, false)
		stubNow(t, time.Date(2025, 12, 31, 23, 59, 58, 0, time.Local))
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "latest.log"), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		if _, err := Rotate(NewConfig(dir)); err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}

		names := listDir(t, dir)
		if len(names) != 1 || names[0] != "2025-12-31_23-59-58.log.gz" {
			t.Errorf("expected archive stamped with now, got %v", names)
		}
	})

	t.Run("same second overwrites earlier archive", func(t *testing.T) {
		stubCreationTime(t, created, true)
		dir := t.TempDir()
		logPath := filepath.Join(dir, "latest.log")

		for _, content := range []string{"first session", "second session"} {
			if err := os.WriteFile(logPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write log: %v", err)
			}
			if _, err := Rotate(NewConfig(dir)); err != nil {
				t.Fatalf("Rotate failed: %v", err)
			}
		}

		names := listDir(t, dir)
		if len(names) != 1 {
			t.Fatalf("expected one archive, got %v", names)
		}
		data, _ := gunzip(t, filepath.Join(dir, names[0]))
		if string(data) != "second session" {
			t.Errorf("archive holds %q, want the later session", data)
		}
	})

	t.Run("real creation time is used when available", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "latest.log"), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		if _, err := Rotate(NewConfig(dir).WithPackageName("app")); err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}

		names := listDir(t, dir)
		if len(names) != 1 {
			t.Fatalf("expected one archive, got %v", names)
		}
		pkg, stamp, ok := ParseArchiveName(names[0])
		if !ok || pkg != "app" {
			t.Fatalf("unexpected archive name %q", names[0])
		}
		if d := time.Since(stamp); d < -time.Minute || d > time.Minute {
			t.Errorf("archive stamp %v is not close to now", stamp)
		}
	})
}

func TestRotateFs(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	t.Run("memory filesystem", func(t *testing.T) {
		stubCreationTime(t, created, true)
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "/logs/latest.log", []byte("hello"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		path, err := RotateFs(fsys, NewConfig("/logs"))
		if err != nil {
			t.Fatalf("RotateFs failed: %v", err)
		}
		if exists, _ := afero.Exists(fsys, path); exists {
			t.Error("latest.log should be removed")
		}

		data, name, err := ReadArchiveFs(fsys, "/logs/2024-01-02_03-04-05.log.gz")
		if err != nil {
			t.Fatalf("ReadArchiveFs failed: %v", err)
		}
		if string(data) != "hello" || name != "2024-01-02_03-04-05.log" {
			t.Errorf("archive = %q (%q)", data, name)
		}
	})

	t.Run("read-only filesystem leaves log in place", func(t *testing.T) {
		stubCreationTime(t, created, true)
		base := afero.NewMemMapFs()
		if err := afero.WriteFile(base, "/logs/latest.log", []byte("keep me"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		_, err := RotateFs(afero.NewReadOnlyFs(base), NewConfig("/logs"))
		if err == nil {
			t.Fatal("expected RotateFs to fail on a read-only filesystem")
		}
		if !dablenutil.IsKind(err, dablenutil.KindIO) {
			t.Errorf("expected KindIO error, got %v", err)
		}

		data, readErr := afero.ReadFile(base, "/logs/latest.log")
		if readErr != nil || string(data) != "keep me" {
			t.Errorf("latest.log changed: %q, %v", data, readErr)
		}
	})

	t.Run("failed removal keeps the archive", func(t *testing.T) {
		stubCreationTime(t, created, true)
		fsys := &noRemoveFs{Fs: afero.NewMemMapFs()}
		if err := afero.WriteFile(fsys, "/logs/latest.log", []byte("data"), 0644); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		_, err := RotateFs(fsys, NewConfig("/logs"))
		if !errors.Is(err, errNoRemove) {
			t.Fatalf("expected removal error, got %v", err)
		}

		if ok, _ := afero.Exists(fsys, "/logs/2024-01-02_03-04-05.log.gz"); !ok {
			t.Error("archive should be left behind")
		}
		if ok, _ := afero.Exists(fsys, "/logs/latest.log"); !ok {
			t.Error("original should still exist")
		}
	})
}

var errNoRemove = errors.New("remove refused")

// noRemoveFs refuses every Remove call.
type noRemoveFs struct {
	afero.Fs
}

func (fs *noRemoveFs) Remove(string) error {
	return errNoRemove
}

func TestArchiveRoundTrip(t *testing.T) {
	stubCreationTime(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local), true)
	dir := t.TempDir()
	content := bytes.Repeat([]byte("log line with some repetition\n"), 500)
	if err := os.WriteFile(filepath.Join(dir, "latest.log"), content, 0644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}
	if _, err := Rotate(NewConfig(dir)); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	archivePath := filepath.Join(dir, "2024-05-06_07-08-09.log.gz")
	first, _, err := ReadArchive(archivePath)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}

	var recompressed bytes.Buffer
	zw := gzip.NewWriter(&recompressed)
	if _, err := zw.Write(first); err != nil {
		t.Fatalf("recompress failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("recompress close failed: %v", err)
	}

	zr, err := gzip.NewReader(&recompressed)
	if err != nil {
		t.Fatalf("gzip.NewReader failed: %v", err)
	}
	second, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}

	if !bytes.Equal(second, content) {
		t.Error("round-tripped content differs from the original log")
	}
}

func TestArchiveName(t *testing.T) {
	ts := time.Date(2023, 11, 4, 9, 0, 1, 0, time.UTC)

	if got := ArchiveName("", ts); got != "2023-11-04_09-00-01.log.gz" {
		t.Errorf("ArchiveName without prefix = %q", got)
	}
	if got := ArchiveName("tool_", ts); got != "tool_2023-11-04_09-00-01.log.gz" {
		t.Errorf("ArchiveName with prefix = %q", got)
	}
}
