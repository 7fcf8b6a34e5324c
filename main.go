package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/d3on/yconf/cli"
	"github.com/d3on/yconf/log"
)

// exitInterrupt is the exit code reported when a translation is aborted by
// the user (SIGINT), distinct from ordinary failures.
const exitInterrupt = 130

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupt)
		}

		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
