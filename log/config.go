package log

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	// LevelTrace sits below slog's Debug level for very verbose output
	// such as per-token pipeline records.
	LevelTrace Level = Level(slog.LevelDebug - 4)

	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = LevelInfo

// String returns the lowercase name of the level. Offsets from named
// levels fall back to slog's representation.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return strings.ToLower(slog.Level(l).String())
	}
}

// Levels returns an iterator over the names of all defined levels, in
// increasing severity.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a level name. Unrecognized names yield DefaultLevel.
// Besides "trace", any spelling accepted by [slog.Level.UnmarshalText]
// is valid, including offsets like "info+2".
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatText

// String returns the lowercase name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// Formats returns an iterator over the names of all defined formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a format name. Unrecognized names yield
// DefaultFormat.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}

	return FormatText
}

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// config holds the settings of a Logger. The mutex guards concurrent
// reconfiguration through Wrap against in-flight reads.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	timeFormat func(time.Time) string
	level      Level
	format     Format
	caller     bool
	color      bool
}

// Option applies a configuration setting to a config.
type Option func(config) config

// set wraps a mutation in the locking every option needs.
func set(mutate func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		mutate(&c)

		return c
	}
}

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// makeConfig creates a config with defaults applied, overridden by any
// provided options.
func makeConfig(w io.Writer, opts ...Option) config {
	c := apply(config{}, WithDefaults(w))

	return apply(c, opts...)
}

// clone copies the config with a fresh mutex and applies options to the
// copy.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// handler builds a slog.Handler for the current configuration.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					formatted := c.timeFormat(t)
					if formatted == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(formatted)
				}

			case slog.LevelKey:
				// Render "TRACE" instead of slog's "DEBUG-4".
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(
						strings.ToUpper(Level(level).String()))
				}
			}

			return a
		},
	}

	switch {
	case c.color && c.format == FormatText:
		return newColorTextHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	default:
		return slog.NewTextHandler(c.output, opts)
	}
}

// WithDefaults returns an option that resets the configuration to its
// defaults, writing to w. A nil writer discards all output.
func WithDefaults(w io.Writer) Option {
	return set(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.timeFormat = makeTimeFormat(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = false
		c.color = false
	})
}

// WithOutput returns an option that sets the output writer. A nil writer
// discards all output.
func WithOutput(w io.Writer) Option {
	return set(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel returns an option that sets the minimum level. Records below
// it are discarded.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat returns an option that sets the output format.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithCaller returns an option that controls whether records include the
// caller's file and line.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithColor returns an option that enables ANSI colorized text output.
// Color applies only to FormatText.
func WithColor(enable bool) Option {
	return set(func(c *config) { c.color = enable })
}

// WithTimeLayout returns an option that sets the timestamp layout.
//
// The layout may be one of the named layouts from the [time] package,
// matched case-insensitively ("rfc3339", "stampmilli", and so on), or a
// custom layout passed verbatim to [time.Time.Format]. An empty layout,
// or the name "none", disables timestamps entirely.
func WithTimeLayout(layout string) Option {
	format := makeTimeFormat(layout)

	return set(func(c *config) { c.timeFormat = format })
}

// namedLayout maps lowercase layout names to time package constants.
var namedLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"none":        "",
}

func makeTimeFormat(layout string) func(time.Time) string {
	normalized := strings.ToLower(strings.TrimSpace(layout))

	if std, ok := namedLayout[normalized]; ok {
		layout = std
	}

	if strings.TrimSpace(layout) == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
