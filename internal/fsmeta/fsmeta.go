// Package fsmeta reads file metadata that os.FileInfo does not expose
// portably, chiefly the creation (birth) time of a file.
package fsmeta

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// CreationTime returns the creation time of the file at path. The boolean
// is false when the platform, the filesystem or the afero backend cannot
// report one; callers pick their own fallback.
//
// Only the OS-backed afero filesystem is probed. Other backends have no
// notion of a birth time.
func CreationTime(fsys afero.Fs, path string) (time.Time, bool) {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return time.Time{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return birthTime(path, info)
}
