// Package log provides a concurrency-safe logging interface based on
// [log/slog], with a Trace level below Debug, configurable output format
// and time layout, and optional colorized output for terminals.
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//
// A package-level default logger writes to standard error and can be
// reconfigured with [Config]:
//
//	log.Config(log.WithLevel(log.LevelTrace))
//	log.Info("starting", slog.String("input", path))
package log
