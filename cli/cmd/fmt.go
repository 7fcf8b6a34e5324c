package cmd

import (
	"context"
	"log/slog"

	"github.com/d3on/yconf/lang"
	"github.com/d3on/yconf/log"
)

// Fmt renders translated sources in a chosen output format.
type Fmt struct {
	YAML YAML `cmd:"" default:"withargs" help:"Render as YAML (default)."`
	JSON JSON `cmd:""                    help:"Render as JSON."`
	AST  AST  `cmd:""                    help:"Print the syntax tree without evaluating."`
}

// YAML renders translated sources as YAML.
type YAML struct {
	Indent int  `default:"2" help:"Indent width for YAML output"            short:"i"`
	Flow   bool `            help:"Inline flow style for nested structures"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	doc, err := translateSources(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	out, err := doc.EncodeYAML(y.Indent, y.Flow)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "yaml"))
	}

	return writeOutput("", out)
}

// JSON renders translated sources as JSON.
type JSON struct {
	Indent  int  `default:"2" help:"Indent width for JSON output" short:"i"`
	Compact bool `            help:"Single-line output"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	doc, err := translateSources(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	indent := j.Indent
	if j.Compact {
		indent = 0
	}

	return writeOutput("", doc.EncodeJSON(indent))
}

// AST prints the syntax tree of the sources without evaluating them.
type AST struct {
	Source []string `arg:"" help:"Source input file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := readSources(a.Source)
	if err != nil {
		return err
	}

	tokens, err := lang.NewLexer(source).Tokenize()
	if err != nil {
		return report(err, source, "fmt ast")
	}

	prog, err := lang.NewParser(tokens).Parse()
	if err != nil {
		return report(err, source, "fmt ast")
	}

	return writeOutput("", lang.FormatAST(prog))
}

// translateSources runs the full pipeline over the named sources,
// streaming file content through the translator.
func translateSources(
	ctx context.Context,
	paths []string,
	format string,
) (*lang.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := openSources(paths)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := lang.TranslateReader(r,
		lang.WithLogger(log.Default().Logger))
	if err != nil {
		return nil, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return doc, nil
}
