package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/dablenparty/dablenutil"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// installed guards the process-wide logger. The first Init to swap it wins.
var installed atomic.Bool

// Terminal destinations: warnings and errors go to consoleErr, everything
// else to consoleOut.
var (
	consoleOut io.Writer = os.Stdout
	consoleErr io.Writer = os.Stderr
)

// Init installs a process-wide slog logger that writes to the terminal and
// to cfg.LogPath() at the same time. The log file is created or truncated.
// The returned function flushes and closes it.
//
// The terminal sink filters at cfg.ConsoleLevel and is colorized according
// to cfg.Color. It writes warnings and errors to stderr and lower levels to
// stdout; the file sink filters at cfg.FileLevel and is plain text.
// Both render time as HH:MM:SS and tag error records with the goroutine id.
//
// A process gets one logger: every call after the first successful one
// returns a KindLogging error wrapping dablenutil.ErrLoggerAlreadyInstalled
// and leaves the installed logger untouched. Init does not rotate; call
// Rotate first to archive the previous session's log, or use
// InitWithRotation.
func Init(cfg Config) (func() error, error) {
	if !installed.CompareAndSwap(false, true) {
		return nil, dablenutil.LoggingError(dablenutil.ErrLoggerAlreadyInstalled)
	}

	closeLog, err := install(cfg)
	if err != nil {
		installed.Store(false)
		return nil, err
	}
	return closeLog, nil
}

// InitWithRotation archives the previous session's log with Rotate and then
// installs the logger as Init does. The guard is claimed before rotating, so
// a call that loses the race never touches the installed logger's file.
func InitWithRotation(cfg Config) (func() error, error) {
	if !installed.CompareAndSwap(false, true) {
		return nil, dablenutil.LoggingError(dablenutil.ErrLoggerAlreadyInstalled)
	}

	if _, err := Rotate(cfg); err != nil {
		installed.Store(false)
		return nil, err
	}
	closeLog, err := install(cfg)
	if err != nil {
		installed.Store(false)
		return nil, err
	}
	return closeLog, nil
}

// install opens the sinks and sets the default logger. The caller holds the
// guard.
func install(cfg Config) (func() error, error) {
	fileSink, err := openFileSink(cfg)
	if err != nil {
		return nil, err
	}

	styles := lineStyles{}
	if colorEnabled(cfg.Color, consoleErr) {
		styles = newLineStyles(consoleErr)
	}

	consoleSink := newLineHandler(consoleOut, cfg.ConsoleLevel, styles)
	consoleSink.errW = consoleErr

	slog.SetDefault(slog.New(fanoutHandler{
		consoleSink,
		newLineHandler(fileSink, cfg.FileLevel, lineStyles{}),
	}))
	return fileSink.Close, nil
}

// Installed reports whether Init has installed the process-wide logger.
func Installed() bool {
	return installed.Load()
}

// openFileSink creates or truncates the log file. With size rotation
// configured, writes go through lumberjack, which compresses its backups.
func openFileSink(cfg Config) (io.WriteCloser, error) {
	logPath := cfg.LogPath()
	if err := dablenutil.EnsureDir(filepath.Dir(logPath)); err != nil {
		return nil, err
	}

	file, err := os.Create(logPath)
	if err != nil {
		return nil, dablenutil.IOError("create log file", err)
	}
	if cfg.MaxSizeMB <= 0 {
		return file, nil
	}

	if err := file.Close(); err != nil {
		return nil, dablenutil.IOError("close log file", err)
	}
	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}, nil
}

// colorEnabled resolves a ColorMode against the console writer.
func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
