package logging

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Level is a verbosity filter for a single sink. Levels are ordered from
// least to most verbose: Off < Error < Warn < Info < Debug < Trace.
type Level int

// Sink levels. LevelOff disables a sink entirely.
const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// TraceLevel is the slog level used for trace records. slog has no
// trace level of its own.
const TraceLevel = slog.LevelDebug - 4

var levelNames = [...]string{
	LevelOff:   "off",
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelTrace: "trace",
}

// String returns the lower-case name of the level.
func (l Level) String() string {
	if l < LevelOff || l > LevelTrace {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Slog returns the lowest slog level that passes this filter. It is
// meaningless for LevelOff; use Allows instead.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	case LevelDebug:
		return slog.LevelDebug
	default:
		return TraceLevel
	}
}

// Allows reports whether a record at lvl passes this filter.
func (l Level) Allows(lvl slog.Level) bool {
	if l <= LevelOff {
		return false
	}
	return lvl >= l.Slog()
}

// ParseLevel converts a level name, case-insensitively, to a Level.
// "warning" is accepted as an alias of "warn".
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		return LevelWarn, nil
	}
	for lvl, n := range levelNames {
		if n == name {
			return Level(lvl), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown log level %q (valid: %s)", s, strings.Join(ValidLevels(), ", "))
}

// ValidLevels returns the list of valid level names, least verbose first.
func ValidLevels() []string {
	return slices.Clone(levelNames[:])
}

// MarshalText implements encoding.TextMarshaler. Levels outside
// LevelOff..LevelTrace have no name and fail to marshal.
func (l Level) MarshalText() ([]byte, error) {
	if l < LevelOff || l > LevelTrace {
		return nil, fmt.Errorf("cannot marshal unknown log level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// levelTag names a record's level for output. Anything below debug is trace.
func levelTag(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return "ERROR"
	case lvl >= slog.LevelWarn:
		return "WARN"
	case lvl >= slog.LevelInfo:
		return "INFO"
	case lvl >= slog.LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}
