package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fleetops/fleetscan/pkg/collector"
	"github.com/fleetops/fleetscan/pkg/k8s/client"
	"github.com/fleetops/fleetscan/pkg/serializer"
)

// runAudit is the shared action body for the single-cluster report
// commands: build a client against the active context, run one
// collector, serialize the report. Unlike the fleet scanner there is no
// cluster list to keep iterating, so API failures are fatal.
func runAudit(ctx context.Context, cmd *cli.Command, create func(*collector.DefaultFactory) collector.Collector) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	kubeconfig := cmd.String("kubeconfig")
	clientSet, _, err := client.BuildKubeClient(kubeconfig)
	if err != nil {
		return err
	}

	rep, err := create(collector.NewDefaultFactory(clientSet)).Collect(ctx)
	if err != nil {
		return err
	}

	// Best effort: the report is still useful without the context name.
	if contextName, ctxErr := client.CurrentContext(kubeconfig); ctxErr == nil {
		rep.Cluster = contextName
	}

	w, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	if err != nil {
		return err
	}
	return w.Serialize(ctx, rep)
}

func ingressTLSCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ingress-tls",
		EnableShellCompletion: true,
		Usage:                 "Validate Ingress TLS coverage in the active cluster",
		Description: `Checks every Ingress for rule hosts that no spec.tls entry covers
(exact or single-label wildcard match) and for referenced TLS secrets
that are missing or not of type kubernetes.io/tls.

# Examples

Cluster-wide check, table output:
  fleetscan ingress-tls --format table

Single namespace, written to a file:
  fleetscan ingress-tls --namespace web -o coverage.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "restrict the check to one namespace (default: all namespaces)",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAudit(ctx, cmd, func(f *collector.DefaultFactory) collector.Collector {
				f.Namespace = cmd.String("namespace")
				return f.CreateIngressTLSCollector()
			})
		},
	}
}

func tenantUsageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "tenant-usage",
		EnableShellCompletion: true,
		Usage:                 "Summarize per-namespace tenant resource usage",
		Description: `Summarizes pod and container counts, CPU/memory requests and
limits, and container image counts by registry host, per namespace.

# Examples

All namespaces:
  fleetscan tenant-usage --format table

Only labeled tenant namespaces:
  fleetscan tenant-usage --selector tier=tenant -o usage.json --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "selector",
				Aliases: []string{"l"},
				Usage:   "label selector restricting which namespaces are summarized",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 4,
				Usage: "number of namespaces summarized in parallel",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAudit(ctx, cmd, func(f *collector.DefaultFactory) collector.Collector {
				f.Selector = cmd.String("selector")
				f.Concurrency = int(cmd.Int("concurrency"))
				return f.CreateTenantUsageCollector()
			})
		},
	}
}

func helmHistoryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "helm-history",
		EnableShellCompletion: true,
		Usage:                 "Count Helm release history revisions from storage secrets",
		Description: `Counts the revision Secrets Helm v3 keeps per release
(sh.helm.release.v1.<release>.v<N>) across all namespaces and flags
releases whose history exceeds the revision threshold. Long histories
bloat the cluster's backing store.

# Examples

Default threshold (10 revisions):
  fleetscan helm-history --format table

Stricter threshold:
  fleetscan helm-history --max-revisions 5`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-revisions",
				Value: 10,
				Usage: "flag releases with more revisions than this",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			maxRevisions := int(cmd.Int("max-revisions"))
			if maxRevisions < 1 {
				return fmt.Errorf("--max-revisions must be at least 1, got %d", maxRevisions)
			}
			return runAudit(ctx, cmd, func(f *collector.DefaultFactory) collector.Collector {
				f.MaxRevisions = maxRevisions
				return f.CreateHelmHistoryCollector()
			})
		},
	}
}
