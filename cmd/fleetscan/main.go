package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fleetops/fleetscan/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args); err != nil {
		slog.Error("fleetscan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
