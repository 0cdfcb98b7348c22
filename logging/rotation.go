package logging

import (
	"compress/gzip"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/dablenparty/dablenutil"
	"github.com/dablenparty/dablenutil/internal/fsmeta"
	"github.com/spf13/afero"
)

// ArchiveTimeLayout is the timestamp layout embedded in archive names.
const ArchiveTimeLayout = "2006-01-02_15-04-05"

// ArchiveExt is the extension shared by every archive.
const ArchiveExt = ".log.gz"

// Overridden in tests.
var (
	creationTime = fsmeta.CreationTime
	now          = time.Now
)

// Rotate archives the log left over from a previous session and returns the
// path the new session should log to. It is meant to run before Init:
//
//	path, err := logging.Rotate(cfg)
//	...
//	closeLog, err := logging.Init(cfg)
//
// When {Folder}/{FileName} exists it is gzipped into
// {Folder}/{prefix}{YYYY-MM-DD_HH-MM-SS}.log.gz, stamped with the file's
// creation time (or the current time where the platform cannot tell), and
// then removed. Archives share one-second resolution, so two rotations
// within the same second leave only the later archive.
//
// Any failure is returned as it happens. Nothing is rolled back: if the
// final removal fails, the archive stays next to the original.
func Rotate(cfg Config) (string, error) {
	return RotateFs(afero.NewOsFs(), cfg)
}

// RotateFs is Rotate over an arbitrary afero filesystem.
func RotateFs(fsys afero.Fs, cfg Config) (string, error) {
	if err := dablenutil.EnsureDirFs(fsys, cfg.Folder); err != nil {
		return "", err
	}

	logPath := cfg.LogPath()
	if _, err := fsys.Stat(logPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return logPath, nil
		}
		return "", dablenutil.IOError("stat log file", err)
	}

	created, ok := creationTime(fsys, logPath)
	if !ok {
		created = now()
	}

	name := ArchiveName(cfg.ArchivePrefix(), created)
	archivePath := filepath.Join(cfg.Folder, name)
	if err := compressFile(fsys, logPath, archivePath, created); err != nil {
		return "", err
	}

	if err := fsys.Remove(logPath); err != nil {
		return "", dablenutil.IOError("remove archived log file", err)
	}
	return logPath, nil
}

// ArchiveName returns the archive file name for a log created at t:
// "{prefix}{YYYY-MM-DD_HH-MM-SS}.log.gz" in t's location.
func ArchiveName(prefix string, t time.Time) string {
	return prefix + t.Format(ArchiveTimeLayout) + ArchiveExt
}

// compressFile writes the whole of src as a single gzip member at dst. The
// member's stored name is dst's base name without ".gz".
func compressFile(fsys afero.Fs, src, dst string, modTime time.Time) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return dablenutil.IOError("read log file", err)
	}

	gzFile, err := fsys.Create(dst)
	if err != nil {
		return dablenutil.IOError("create archive", err)
	}
	defer func() { _ = gzFile.Close() }()

	gzWriter := gzip.NewWriter(gzFile)
	gzWriter.Name = filepath.Base(dst[:len(dst)-len(".gz")])
	gzWriter.ModTime = modTime

	if _, err := gzWriter.Write(data); err != nil {
		return dablenutil.IOError("write archive", err)
	}
	if err := gzWriter.Close(); err != nil {
		return dablenutil.IOError("finish archive", err)
	}
	if err := gzFile.Close(); err != nil {
		return dablenutil.IOError("close archive", err)
	}
	return nil
}
