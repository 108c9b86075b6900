package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/fleetops/fleetscan/pkg/clusterlist"
	"github.com/fleetops/fleetscan/pkg/fleet/scan"
)

func hostNetworkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "hostnetwork",
		Aliases:               []string{"hn"},
		EnableShellCompletion: true,
		Usage:                 "Scan a fleet of clusters for pods running on the host network",
		ArgsUsage:             "<env|clusters_file> [out_dir]",
		Description: `Scans every cluster in a cluster list file for pods with
hostNetwork: true and writes two matched artifacts:

  - <out_dir>/hostnetwork-pods-<id>-<timestamp>.csv   machine-readable rows
  - <out_dir>/scan-hostnetwork-<id>-<timestamp>.log   timestamped human log

The first argument is either a built-in environment preset (prod, stg,
dev), resolved to <preset>_clusters.txt, or a literal path to a cluster
list file: one cluster per line, '#' starts a comment, blank lines are
ignored.

Clusters are scanned strictly sequentially in file order. Each cluster
is activated through an external pre-authenticated login command; a
failed login is logged as a warning and the scan continues with the
next cluster, so one bad cluster never blocks the rest of the fleet.

# Examples

Scan production:
  fleetscan hostnetwork prod ./reports

Scan two specific clusters from a custom list:
  fleetscan hostnetwork ./my_clusters.txt --limit-cluster=edge-1,edge-2

Brace syntax is accepted for the filter too:
  fleetscan hostnetwork dev --limit-cluster='{dev-a,dev-b}' --out-dir=/tmp`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "limit-cluster",
				Usage: "only scan the named clusters (comma list, optionally brace-wrapped)",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "output directory for the CSV and log artifacts (overrides positional out_dir)",
			},
			&cli.StringFlag{
				Name:  "login-command",
				Usage: "external command used to switch the active cluster context",
			},
			&cli.FloatFlag{
				Name:  "qps",
				Usage: "pace cluster processing to at most this many clusters per second (0 disables)",
			},
			configFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 {
				return fmt.Errorf("missing required argument: environment preset or cluster list file")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			clustersFile, baseID, err := resolveClusterList(cmd.Args().Get(0), cfg)
			if err != nil {
				return err
			}

			outDir := cfg.OutputDir
			if cmd.Args().Len() > 1 {
				outDir = cmd.Args().Get(1)
			}
			if dir := cmd.String("out-dir"); dir != "" {
				outDir = dir
			}

			loginCommand := cmd.String("login-command")
			if loginCommand == "" {
				loginCommand = cfg.LoginCommand
			}

			api := scan.NewKubeAPI(loginCommand, cmd.String("kubeconfig"))
			if err := api.CheckAvailable(); err != nil {
				return err
			}

			scanner := scan.New(scan.Options{
				ClustersFile: clustersFile,
				BaseID:       baseID,
				OutDir:       outDir,
				Filter:       clusterlist.ParseFilter(cmd.String("limit-cluster")),
				QPS:          cmd.Float("qps"),
			}, api)

			res, err := scanner.Run(ctx)
			if err != nil {
				return err
			}

			slog.Info("scan finished",
				slog.Int("scanned", res.Scanned),
				slog.Int("skipped", res.Skipped),
				slog.Int("failed", res.Failed),
				slog.Int("pods", res.PodsSeen),
				slog.String("csv", res.CSVPath),
				slog.String("log", res.LogPath))
			return nil
		},
	}
}
