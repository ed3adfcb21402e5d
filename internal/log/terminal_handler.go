package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset   = "\033[0m"
	ansiDim     = "\033[2m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// shortIDLen is the number of correlation ID characters shown in the
// terminal prefix.
const shortIDLen = 8

// TerminalHandler formats log records as coloured terminal output. A
// correlation ID attribute is pulled out of the attribute list and shown
// as a short prefix so that lines of one run line up.
//
// Output format:
//
//	15:04:05.000 INF [1f0c9a2e] listing fetched endpoint=restinfo/restBrandList rows=412
type TerminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &TerminalHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one formatted line.
func (h *TerminalHandler) Handle(ctx context.Context, r slog.Record) error {
	id := CorrelationID(ctx)
	var stored []slog.Attr
	for _, a := range h.attrs {
		if a.Key == string(CorrelationIDKey) {
			id = a.Value.String()
			continue
		}
		stored = append(stored, a)
	}
	var own []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == string(CorrelationIDKey) && len(h.groups) == 0 {
			id = a.Value.String()
			return true
		}
		own = append(own, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	buf.Grow(256)
	writeStyled(&buf, ansiDim, ts.Format("15:04:05.000"))
	buf.WriteByte(' ')
	color, label := levelStyle(r.Level)
	writeStyled(&buf, color, label)
	buf.WriteByte(' ')
	if id != "" {
		writeStyled(&buf, ansiMagenta, "["+shortID(id)+"]")
		buf.WriteByte(' ')
	}
	writeStyled(&buf, ansiBold, r.Message)
	for _, a := range stored {
		appendAttr(&buf, a, nil)
	}
	for _, a := range own {
		appendAttr(&buf, a, h.groups)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(h.groups) > 0 {
		grouped := slog.Attr{Key: strings.Join(h.groups, "."), Value: slog.GroupValue(attrs...)}
		attrs = []slog.Attr{grouped}
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a handler that qualifies subsequent attribute keys.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func writeStyled(buf *bytes.Buffer, style, s string) {
	buf.WriteString(style)
	buf.WriteString(s)
	buf.WriteString(ansiReset)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan, "DBG"
	case level < slog.LevelWarn:
		return ansiGreen, "INF"
	case level < slog.LevelError:
		return ansiYellow, "WRN"
	default:
		return ansiRed, "ERR"
	}
}

func appendAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := groups
		if a.Key != "" {
			prefix = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, ga, prefix)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	buf.WriteByte(' ')
	writeStyled(buf, ansiDim, key+"=")
	if a.Key == "error" {
		writeStyled(buf, ansiRed, formatAttrValue(a.Value))
		return
	}
	buf.WriteString(formatAttrValue(a.Value))
}

func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"\\=") {
			return fmt.Sprintf("%q", s)
		}
		return s
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	default:
		return v.String()
	}
}
