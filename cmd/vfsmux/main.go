package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/mwantia/vfsmux"
	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/command/builtin"
	"github.com/mwantia/vfsmux/log"
)

const version = "0.1.0"

const usage = `vfsmux - path-based virtual filesystem multiplexer

Usage:
  vfsmux demo [options]
  vfsmux exec [options] [--] <command>...
  vfsmux shell [options]
  vfsmux -h | --help
  vfsmux --version

Options:
  -h --help              Show this screen.
  --version              Show version.
  --log-level=<level>    Log level (debug, info, warn, error) [default: info].
  --log-file=<file>      Additionally write logs to a rotating file.
  --json-log             Write logs as JSON.
  --sqlite=<path>        Mount a SQLite store at /sqlite (":memory:" works).
  --local=<dir>          Mount a local directory at /local.
  --readonly             Mount --local read-only.
`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, opts))
}

func run(ctx context.Context, opts docopt.Opts) int {
	logLevel, _ := opts.String("--log-level")
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := log.NewLogger("vfsmux", level, stringOpt(opts, "--log-file"), false)
	logger.JSON = boolOpt(opts, "--json-log")

	mt, err := vfsmux.NewMountTable(vfsmux.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create mount table: %v", err)
		return 1
	}
	defer func() {
		if err := mt.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown: %v", err)
		}
	}()

	if err := setupMounts(ctx, mt, &mountConfig{
		SQLite:   stringOpt(opts, "--sqlite"),
		Local:    stringOpt(opts, "--local"),
		ReadOnly: boolOpt(opts, "--readonly"),
	}); err != nil {
		logger.Error("failed to set up mounts: %v", err)
		return 1
	}

	center := command.NewCenter(mt, logger)
	if err := builtin.Register(center); err != nil {
		logger.Error("failed to register commands: %v", err)
		return 1
	}

	switch {
	case boolOpt(opts, "demo"):
		return runDemo(ctx, center, os.Stdout, logger)
	case boolOpt(opts, "exec"):
		words, _ := opts["<command>"].([]string)
		return execute(ctx, center, words...)
	case boolOpt(opts, "shell"):
		return runShell(ctx, center, os.Stdin, os.Stdout)
	}

	return 0
}

func boolOpt(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

func stringOpt(opts docopt.Opts, key string) string {
	v, _ := opts.String(key)
	return v
}

func execute(ctx context.Context, center *command.Center, args ...string) int {
	code, err := center.Execute(ctx, os.Stdout, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	return code
}
