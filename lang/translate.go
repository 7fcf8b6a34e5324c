package lang

import (
	"io"
	"log/slog"

	"github.com/klauspost/readahead"
)

// Option configures a translation run.
type Option func(*options)

type options struct {
	logger *slog.Logger
	env    Env
}

// WithLogger attaches a structured logger that receives per-stage debug
// records during translation.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEnv seeds the evaluator with predefined constants. The map is
// mutated as the program declares further constants.
func WithEnv(env Env) Option {
	return func(o *options) { o.env = env }
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.New(slog.DiscardHandler)}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Translate runs the full pipeline over source text: tokenize, parse,
// evaluate. Errors from each stage are wrapped so callers can match both
// the translation failure and the underlying cause with errors.Is, and
// carry a "stage" attribute naming the failed stage.
func Translate(source string, opts ...Option) (*Document, error) {
	o := newOptions(opts)

	o.logger.Debug("tokenizing source", slog.Int("bytes", len(source)))

	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, ErrTranslate.
			Wrap(err).
			With(slog.String("stage", "lexical"))
	}

	o.logger.Debug("parsing token stream", slog.Int("tokens", len(tokens)))

	prog, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, ErrTranslate.
			Wrap(err).
			With(slog.String("stage", "syntactic"))
	}

	o.logger.Debug("evaluating program",
		slog.Int("statements", len(prog.Statements)))

	doc, err := NewEvaluator(o.env).EvaluateProgram(prog)
	if err != nil {
		return nil, ErrTranslate.
			Wrap(err).
			With(slog.String("stage", "evaluation"))
	}

	o.logger.Debug("translation complete", slog.Int("entries", doc.Len()))

	return doc, nil
}

// TranslateReader reads all source text from r and translates it. The
// reader is wrapped with asynchronous read-ahead so file and pipe input
// overlaps with the pipeline.
func TranslateReader(r io.Reader, opts ...Option) (*Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	source, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Translate(string(source), opts...)
}
