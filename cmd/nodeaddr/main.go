package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"nodeaddr/internal/cli"
)

func main() {
	logLevelStr := flag.String("log-level", os.Getenv("NODEADDR_LOG_LEVEL"), "Log level: debug, info, warn, error (default from NODEADDR_LOG_LEVEL env, else warn)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n\ncommands:\n", os.Args[0])
		cli.Usage(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "\nflags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	// stdout carries the result line; diagnostics go to stderr.
	level := slog.LevelWarn
	if *logLevelStr != "" {
		if err := level.UnmarshalText([]byte(strings.TrimSpace(*logLevelStr))); err != nil {
			fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))
			fallback.Error("invalid log level", slog.String("value", *logLevelStr))
			os.Exit(1)
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cli.New(os.Stdout, logger).Run(flag.Args()); err != nil {
		logger.Error("nodeaddr failed",
			slog.Any("args", flag.Args()),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
}
