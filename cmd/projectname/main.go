// Package main is the entry point for the projectname command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/projectname/internal/cli"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
