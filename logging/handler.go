package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TimeFormat is the time layout shared by the console and file sinks.
const TimeFormat = "15:04:05"

// lineStyles colorizes a console line. The zero value renders plain text.
type lineStyles struct {
	enabled bool
	time    lipgloss.Style
	levels  map[string]lipgloss.Style
}

func newLineStyles(w io.Writer) lineStyles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)

	levels := map[string]lipgloss.Style{
		"ERROR": r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		"WARN":  r.NewStyle().Foreground(lipgloss.Color("3")),
		"INFO":  r.NewStyle().Foreground(lipgloss.Color("2")),
		"DEBUG": r.NewStyle().Foreground(lipgloss.Color("4")),
		"TRACE": r.NewStyle().Foreground(lipgloss.Color("5")),
	}
	return lineStyles{
		enabled: true,
		time:    r.NewStyle().Foreground(lipgloss.Color("8")),
		levels:  levels,
	}
}

func (s lineStyles) renderTime(text string) string {
	if !s.enabled {
		return text
	}
	return s.time.Render(text)
}

func (s lineStyles) renderLevel(tag string) string {
	if !s.enabled {
		return tag
	}
	return s.levels[tag].Render(tag)
}

// lineHandler is a slog.Handler writing one human-readable line per record:
//
//	15:04:05 [INFO] message key=value
//	15:04:05 [ERROR] (goroutine 7) message key=value
//
// Source locations are never written. The goroutine id appears on error
// records only.
type lineHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	errW   io.Writer // receives warnings and errors instead of w when set
	level  Level
	styles lineStyles

	attrs  []byte // preformatted attributes from WithAttrs
	prefix string // group prefix for keys, e.g. "request."
}

func newLineHandler(w io.Writer, level Level, styles lineStyles) *lineHandler {
	return &lineHandler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  level,
		styles: styles,
	}
}

// Enabled implements slog.Handler.
func (h *lineHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.level.Allows(lvl)
}

// Handle implements slog.Handler.
func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	if !r.Time.IsZero() {
		buf = append(buf, h.styles.renderTime(r.Time.Format(TimeFormat))...)
		buf = append(buf, ' ')
	}

	tag := levelTag(r.Level)
	buf = append(buf, '[')
	buf = append(buf, h.styles.renderLevel(tag)...)
	buf = append(buf, "] "...)

	if r.Level >= slog.LevelError {
		buf = append(buf, "(goroutine "...)
		buf = strconv.AppendUint(buf, goroutineID(), 10)
		buf = append(buf, ") "...)
	}

	buf = append(buf, r.Message...)
	buf = append(buf, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.prefix, a)
		return true
	})
	buf = append(buf, '\n')

	w := h.w
	if h.errW != nil && r.Level >= slog.LevelWarn {
		w = h.errW
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := w.Write(buf)
	return err
}

// WithAttrs implements slog.Handler.
func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = appendAttr(clone.attrs, h.prefix, a)
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendAttr writes " key=value", flattening groups into dotted keys.
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return buf
		}
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			buf = appendAttr(buf, prefix, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value.String())
}

// appendValue quotes values that would otherwise be ambiguous on a line.
func appendValue(buf []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " \t\n\r\"=") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

// goroutineID returns the id of the calling goroutine, parsed from the
// "goroutine N [state]:" header of its stack trace.
func goroutineID() uint64 {
	var stack [64]byte
	n := runtime.Stack(stack[:], false)
	fields := bytes.Fields(stack[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// fanoutHandler sends each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

// Enabled implements slog.Handler.
func (f fanoutHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler.
func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

// WithGroup implements slog.Handler.
func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
