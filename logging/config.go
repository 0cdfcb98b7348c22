package logging

import (
	"path/filepath"
)

// DefaultFileName is the name of the active log file inside the log folder.
const DefaultFileName = "latest.log"

// ColorMode controls whether the console sink is colorized.
type ColorMode int

const (
	// ColorAuto colorizes only when the console is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// String returns the string representation of the color mode.
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// Config describes where logs go and how verbose each sink is. Build one with
// NewConfig and the With* methods; each setter returns an updated copy and
// never modifies the receiver.
//
//	cfg := logging.NewConfig("logs").
//	    WithPackageName("myapp").
//	    WithConsoleLevel(logging.LevelWarn)
type Config struct {
	// Folder is the directory holding the active log and its archives.
	Folder string
	// FileName is the active log's name inside Folder (default: "latest.log").
	FileName string
	// ConsoleLevel filters the terminal sink (default: info).
	ConsoleLevel Level
	// FileLevel filters the file sink (default: debug).
	FileLevel Level
	// PackageName prefixes archive names as "{PackageName}_". Empty means
	// no prefix.
	PackageName string
	// MaxSizeMB, when positive, rotates the active log by size during a
	// session, keeping MaxBackups compressed backups.
	MaxSizeMB  int
	MaxBackups int
	// Color controls console colorization (default: auto).
	Color ColorMode
}

// NewConfig returns a Config for folder with every other setting at its
// default.
func NewConfig(folder string) Config {
	return Config{
		Folder:       folder,
		FileName:     DefaultFileName,
		ConsoleLevel: LevelInfo,
		FileLevel:    LevelDebug,
		MaxBackups:   3,
	}
}

// WithFolder returns a copy of c with the log folder set.
func (c Config) WithFolder(folder string) Config {
	c.Folder = folder
	return c
}

// WithFileName returns a copy of c with the active log file name set.
func (c Config) WithFileName(name string) Config {
	c.FileName = name
	return c
}

// WithFile returns a copy of c whose folder and file name are taken from
// path.
func (c Config) WithFile(path string) Config {
	c.Folder = filepath.Dir(path)
	c.FileName = filepath.Base(path)
	return c
}

// WithLevel returns a copy of c with both sinks set to lvl.
func (c Config) WithLevel(lvl Level) Config {
	c.ConsoleLevel = lvl
	c.FileLevel = lvl
	return c
}

// WithConsoleLevel returns a copy of c with the terminal level set.
func (c Config) WithConsoleLevel(lvl Level) Config {
	c.ConsoleLevel = lvl
	return c
}

// WithFileLevel returns a copy of c with the file level set.
func (c Config) WithFileLevel(lvl Level) Config {
	c.FileLevel = lvl
	return c
}

// WithPackageName returns a copy of c with the archive prefix set.
func (c Config) WithPackageName(name string) Config {
	c.PackageName = name
	return c
}

// WithSizeRotation returns a copy of c that rotates the active log once it
// exceeds maxSizeMB, keeping maxBackups backups.
func (c Config) WithSizeRotation(maxSizeMB, maxBackups int) Config {
	c.MaxSizeMB = maxSizeMB
	c.MaxBackups = maxBackups
	return c
}

// WithColor returns a copy of c with the console color mode set.
func (c Config) WithColor(mode ColorMode) Config {
	c.Color = mode
	return c
}

// LogPath returns the path of the active log file.
func (c Config) LogPath() string {
	name := c.FileName
	if name == "" {
		name = DefaultFileName
	}
	return filepath.Join(c.Folder, name)
}

// ArchivePrefix returns the prefix prepended to archive names: empty, or
// "{PackageName}_".
func (c Config) ArchivePrefix() string {
	if c.PackageName == "" {
		return ""
	}
	return c.PackageName + "_"
}
