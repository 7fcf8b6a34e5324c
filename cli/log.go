package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/d3on/yconf/log"
)

// logLevel configures the logger level as a side effect of flag parsing
// via encoding.TextUnmarshaler, so diagnostics emitted during parsing
// already honor the requested level.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the logger format as a side effect of flag
// parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp layout."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
	Color      bool      `default:"false"                                      help:"Colorize text output."       negatable:""`
}

func (*logConfig) group() kong.Group {
	return kong.Group{
		Key:   "log",
		Title: "Logging options",
	}
}

// start applies the fully parsed logger configuration, including flags
// that do not pass through TextUnmarshaler.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithColor(f.Color),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("color", f.Color),
	)
}

// scan performs an early pass over the raw arguments and applies any
// logger flags it recognizes, before kong begins parsing. Unknown or
// malformed values are left for kong to reject.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		// Non-boolean flags may pass their value as the next argument.
		next := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return ""
		}

		// Boolean flags are true unless assigned an explicit value.
		enabled := func() bool {
			if !assigned {
				return true
			}

			v, err := strconv.ParseBool(value)

			return err == nil && v
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-color":
			f.Color = enabled()
			log.Config(log.WithColor(f.Color))

		case "--no-log-color":
			f.Color = !enabled()
			log.Config(log.WithColor(f.Color))

		case "--log-caller":
			f.Caller = enabled()
			log.Config(log.WithCaller(f.Caller))

		case "--no-log-caller":
			f.Caller = !enabled()
			log.Config(log.WithCaller(f.Caller))
		}
	}
}
