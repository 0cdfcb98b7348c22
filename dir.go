package dablenutil

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// DirPerm is the permission used for every directory this module creates.
const DirPerm fs.FileMode = 0755

// EnsureDir creates dir and any missing parents. A directory that already
// exists, including one created concurrently by another process, is not an
// error.
func EnsureDir(dir string) error {
	return EnsureDirFs(afero.NewOsFs(), dir)
}

// EnsureDirFs is EnsureDir over an arbitrary afero filesystem.
func EnsureDirFs(fsys afero.Fs, dir string) error {
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return IOError("create directory "+dir, err)
	}
	return nil
}

// EnsureDirAsync runs EnsureDir on its own goroutine. The returned channel
// receives exactly one value, the same error EnsureDir would have returned,
// and is then closed.
//
//	if err := <-dablenutil.EnsureDirAsync("path/to/dir"); err != nil {
//	    return err
//	}
func EnsureDirAsync(dir string) <-chan error {
	return EnsureDirFsAsync(afero.NewOsFs(), dir)
}

// EnsureDirFsAsync is EnsureDirAsync over an arbitrary afero filesystem.
func EnsureDirFsAsync(fsys afero.Fs, dir string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- EnsureDirFs(fsys, dir)
	}()
	return done
}
