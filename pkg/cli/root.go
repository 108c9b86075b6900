package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// version is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/fleetops/fleetscan/pkg/cli.version=1.0.0'"
var version = "dev"

// Shared flags reused across commands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "yaml",
		Usage:   "output format (yaml, json, table)",
	}
	kubeconfigFlag = &cli.StringFlag{
		Name:  "kubeconfig",
		Usage: "path to kubeconfig file (default: KUBECONFIG or ~/.kube/config)",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to fleetscan config file (yaml)",
	}
)

// Execute runs the fleetscan CLI with the given arguments.
func Execute(ctx context.Context, args []string) error {
	return rootCmd().Run(ctx, args)
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    "fleetscan",
		Usage:   "Operational reports for Kubernetes fleets",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			hostNetworkCmd(),
			ingressTLSCmd(),
			tenantUsageCmd(),
			helmHistoryCmd(),
		},
	}
}

func setupLogging(debug, jsonFormat bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
