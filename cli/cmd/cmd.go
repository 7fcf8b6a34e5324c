package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/d3on/yconf/lang"
)

// ErrWriteOutput wraps failures writing a rendered document.
var ErrWriteOutput = lang.NewError("write output")

// stdinSource is the path that selects stdin as a source.
const stdinSource = "-"

// openSources opens the named source files for reading in order. An
// empty list, or the name "-", selects stdin. The caller must close the
// returned reader; stdin itself is never closed.
func openSources(paths []string) (io.ReadCloser, error) {
	if len(paths) == 0 {
		return io.NopCloser(os.Stdin), nil
	}

	readers := make([]io.Reader, 0, len(paths))
	closers := make([]io.Closer, 0, len(paths))

	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	for _, path := range paths {
		if path == stdinSource {
			readers = append(readers, os.Stdin)

			continue
		}

		file, err := os.Open(path)
		if err != nil {
			closeAll()

			return nil, lang.ErrReadInput.
				Wrap(err).
				With(slog.String("path", path))
		}

		readers = append(readers, file)
		closers = append(closers, file)
	}

	return &multiReadCloser{
		Reader:  io.MultiReader(readers...),
		closers: closers,
	}, nil
}

// readSources reads the complete concatenated content of the named
// source files.
func readSources(paths []string) (string, error) {
	r, err := openSources(paths)
	if err != nil {
		return "", err
	}
	defer r.Close()

	source, err := io.ReadAll(r)
	if err != nil {
		return "", lang.ErrReadInput.Wrap(err)
	}

	return string(source), nil
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var errs []error

	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// report prints a source snippet for positioned translation errors to
// stderr and returns the error annotated with the command name.
func report(err error, source, command string) error {
	var le *lang.Error
	if errors.As(err, &le) {
		if snippet := le.Snippet(source); snippet != "" {
			fmt.Fprint(os.Stderr, snippet)
		}
	}

	return lang.WrapError(err).With(slog.String("command", command))
}

// writeOutput writes rendered output to the named file, or to stdout
// when path is empty.
func writeOutput(path, content string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, content)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		return ErrWriteOutput.
			Wrap(err).
			With(slog.String("path", path))
	}

	return nil
}
