package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dablenparty/dablenutil"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// Archive describes one rotated log on disk.
type Archive struct {
	Path string
	Name string
	// PackageName is the prefix the archive was written with, without the
	// trailing underscore. Empty when the archive has no prefix.
	PackageName string
	Time        time.Time
	Size        int64
}

// ArchiveFilter narrows ListArchives. Zero-valued fields match everything.
type ArchiveFilter struct {
	// Match is a glob matched against the archive file name, e.g. "myapp_2024-*".
	Match string
	// PackageName keeps only archives written with this prefix.
	PackageName string
	// Since keeps archives stamped at or after this time.
	Since time.Time
	// Until keeps archives stamped at or before this time.
	Until time.Time
}

// ParseArchiveName splits an archive file name into its package name and
// timestamp. ok is false for names that were not produced by Rotate.
func ParseArchiveName(name string) (packageName string, stamp time.Time, ok bool) {
	base, found := strings.CutSuffix(name, ArchiveExt)
	if !found || len(base) < len(ArchiveTimeLayout) {
		return "", time.Time{}, false
	}

	split := len(base) - len(ArchiveTimeLayout)
	prefix, rawStamp := base[:split], base[split:]
	if prefix != "" {
		packageName, found = strings.CutSuffix(prefix, "_")
		if !found || packageName == "" {
			return "", time.Time{}, false
		}
	}

	stamp, err := time.ParseInLocation(ArchiveTimeLayout, rawStamp, time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return packageName, stamp, true
}

// ListArchives returns the archives in folder that match filter, newest
// first. A missing folder yields no archives.
func ListArchives(folder string, filter ArchiveFilter) ([]Archive, error) {
	return ListArchivesFs(afero.NewOsFs(), folder, filter)
}

// ListArchivesFs is ListArchives over an arbitrary afero filesystem.
func ListArchivesFs(fsys afero.Fs, folder string, filter ArchiveFilter) ([]Archive, error) {
	var matcher glob.Glob
	if filter.Match != "" {
		g, err := glob.Compile(filter.Match)
		if err != nil {
			return nil, fmt.Errorf("invalid archive pattern %q: %w", filter.Match, err)
		}
		matcher = g
	}

	infos, err := afero.ReadDir(fsys, folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, dablenutil.IOError("read log folder", err)
	}

	var archives []Archive
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		pkg, stamp, ok := ParseArchiveName(info.Name())
		if !ok {
			continue
		}
		archive := Archive{
			Path:        filepath.Join(folder, info.Name()),
			Name:        info.Name(),
			PackageName: pkg,
			Time:        stamp,
			Size:        info.Size(),
		}
		if matchesArchive(archive, filter, matcher) {
			archives = append(archives, archive)
		}
	}

	sort.SliceStable(archives, func(i, j int) bool {
		return archives[i].Time.After(archives[j].Time)
	})
	return archives, nil
}

// matchesArchive checks an archive against every filter criterion.
func matchesArchive(a Archive, filter ArchiveFilter, matcher glob.Glob) bool {
	if matcher != nil && !matcher.Match(a.Name) {
		return false
	}
	if filter.PackageName != "" && a.PackageName != filter.PackageName {
		return false
	}
	if !filter.Since.IsZero() && a.Time.Before(filter.Since) {
		return false
	}
	if !filter.Until.IsZero() && a.Time.After(filter.Until) {
		return false
	}
	return true
}

// ReadArchive decompresses the archive at path. It returns the original log
// content and the file name stored in the gzip header.
func ReadArchive(path string) ([]byte, string, error) {
	return ReadArchiveFs(afero.NewOsFs(), path)
}

// ReadArchiveFs is ReadArchive over an arbitrary afero filesystem.
func ReadArchiveFs(fsys afero.Fs, path string) ([]byte, string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, "", dablenutil.IOError("open archive", err)
	}
	defer func() { _ = file.Close() }()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, "", dablenutil.IOError("read archive header", err)
	}
	defer func() { _ = gzReader.Close() }()

	data, err := io.ReadAll(gzReader)
	if err != nil {
		return nil, "", dablenutil.IOError("decompress archive", err)
	}
	return data, gzReader.Name, nil
}
