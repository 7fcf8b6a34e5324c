package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/d3on/yconf/cli/cmd"
	"github.com/d3on/yconf/pkg"
)

// CLI is the top-level command-line interface for yconf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Fmt cmd.Fmt `cmd:"" help:"Render translated sources as YAML, JSON, or a syntax tree"`

	Translate cmd.Translate `cmd:"" default:"withargs" help:"Translate sources into YAML"`
}

// Run executes the yconf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early (help, usage errors). An interrupt cancels the
// context, and Run reports it as [context.Canceled].
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pre-scan for logger flags so early diagnostics honor them
	// regardless of flag position. TextUnmarshaler on the level and
	// format flags covers those during normal parsing; the pre-scan
	// also catches boolean flags like --log-color.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		kong.Vars{"version": pkg.Name + " " + strings.TrimSpace(pkg.Version)}.
			CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Apply the complete logger configuration, including flags that do
	// not pass through TextUnmarshaler.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	if err := ktx.Run(); err != nil {
		if ctx.Err() != nil {
			return context.Canceled
		}

		return err
	}

	return nil
}
