package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// ANSI escape sequences used by the colorized text handler.
const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// colorTextHandler renders records as space-separated key=value pairs
// with ANSI colors: keys in gray, values colored by type, the level
// colored by severity.
type colorTextHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newColorTextHandler(w io.Writer, opts *slog.HandlerOptions) *colorTextHandler {
	return &colorTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *colorTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeLevel(buf, r.Level)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(
				slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *colorTextHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; this handler is for human eyes, not parsing.
	return h
}

func (h *colorTextHandler) writeLevel(buf *bytes.Buffer, level slog.Level) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	switch {
	case level >= slog.LevelError:
		buf.WriteString(ansiRed)
	case level >= slog.LevelWarn:
		buf.WriteString(ansiYellow)
	case level >= slog.LevelInfo:
		buf.WriteString(ansiGreen)
	default:
		buf.WriteString(ansiBlue)
	}

	buf.WriteString(Level(level).String())
	buf.WriteString(ansiReset)
}

func (h *colorTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	// Resolve LogValuer values, expanding groups inline.
	value := a.Value.Resolve()

	if value.Kind() == slog.KindGroup {
		for _, member := range value.Group() {
			member.Key = a.Key + "." + member.Key
			h.writeAttr(buf, member)
		}

		return
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, slog.Attr{Key: a.Key, Value: value})
		if a.Equal(slog.Attr{}) {
			return
		}

		value = a.Value
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(ansiGray)
	buf.WriteString(a.Key)
	buf.WriteString(ansiReset)
	buf.WriteByte('=')

	h.writeValue(buf, value)
}

func (h *colorTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64:
		buf.WriteString(ansiYellow)
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		buf.WriteString(ansiYellow)
		buf.WriteString(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		buf.WriteString(ansiYellow)
		buf.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(ansiGreen)
		} else {
			buf.WriteString(ansiRed)
		}

		buf.WriteString(strconv.FormatBool(v.Bool()))

	case slog.KindDuration:
		buf.WriteString(ansiMagenta)
		buf.WriteString(v.Duration().String())

	case slog.KindTime:
		buf.WriteString(ansiBlue)
		buf.WriteString(v.Time().String())

	default:
		buf.WriteString(ansiCyan)
		buf.WriteString(v.String())
	}

	buf.WriteString(ansiReset)
}
