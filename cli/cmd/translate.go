package cmd

import (
	"context"
	"log/slog"

	"github.com/d3on/yconf/lang"
	"github.com/d3on/yconf/log"
)

// Translate translates configuration language sources into YAML.
type Translate struct {
	Indent int  `default:"2"                 help:"Indent width for YAML output"            short:"i"`
	Flow   bool `                            help:"Inline flow style for nested structures"`
	Cache  bool `default:"true" negatable:"" help:"Memoize translations by content hash"`

	Output string `help:"Write output to file instead of stdout" short:"o" type:"path"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the translate command.
func (t *Translate) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := readSources(t.Source)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "translating",
		slog.Int("bytes", len(source)),
		slog.Int("sources", max(len(t.Source), 1)),
		slog.Bool("cache", t.Cache),
	)

	var doc *lang.Document

	if t.Cache {
		doc, err = lang.TranslateCached(source)
	} else {
		doc, err = lang.Translate(source,
			lang.WithLogger(log.Default().Logger))
	}

	if err != nil {
		return report(err, source, "translate")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := doc.EncodeYAML(t.Indent, t.Flow)
	if err != nil {
		return report(err, source, "translate")
	}

	if err := writeOutput(t.Output, out); err != nil {
		return err
	}

	dest := t.Output
	if dest == "" {
		dest = "stdout"
	}

	log.InfoContext(ctx, "translation completed successfully",
		slog.String("output", dest),
		slog.Int("entries", doc.Len()),
	)

	return nil
}
