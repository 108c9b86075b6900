// Package cli implements the command-line interface for the fleetscan
// tool.
//
// # Overview
//
// fleetscan produces operational reports for Kubernetes fleets. The
// core command scans many clusters sequentially for pods running on the
// host network; the remaining commands report on the single currently
// active cluster.
//
// # Commands
//
// hostnetwork - Multi-cluster host network pod scan:
//
//	fleetscan hostnetwork <env|clusters_file> [out_dir]
//	fleetscan hostnetwork prod ./reports
//	fleetscan hostnetwork ./edge_clusters.txt --limit-cluster=edge-1,edge-2
//
// Iterates a cluster list file (presets prod, stg, dev resolve to
// <preset>_clusters.txt), activates each cluster through an external
// login command, and writes two matched artifacts per run: an
// append-only CSV of matching pods and a timestamped scan log. Login
// failures skip the cluster and the run continues; the exit code is 0
// even when zero clusters or zero pods match.
//
// ingress-tls - Ingress TLS coverage validation:
//
//	fleetscan ingress-tls [--namespace NS] [--format yaml|json|table]
//
// tenant-usage - per-namespace resource usage summary:
//
//	fleetscan tenant-usage [--selector KEY=VALUE] [--format yaml|json|table]
//
// helm-history - Helm release revision counts:
//
//	fleetscan helm-history [--max-revisions N] [--format yaml|json|table]
//
// # Global Flags
//
//	--debug      Enable debug logging
//	--log-json   Output logs in JSON format
//	--help, -h   Show command help
//	--version    Show version information
//
// # Environment Variables
//
//	FLEETSCAN_CLUSTER_DIR      Directory holding preset cluster list files
//	FLEETSCAN_OUT_DIR          Default output directory for scan artifacts
//	FLEETSCAN_LOGIN_COMMAND    External cluster login command
//	KUBECONFIG                 Path to kubeconfig file
//
// # Exit Codes
//
//	0  Success (including scans that matched zero clusters or pods)
//	1  Startup error: missing login command, missing or invalid cluster
//	   list, unknown argument or flag; or a report command API failure
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to
// specialized packages:
//   - pkg/fleet/scan - scan orchestration over the cluster list
//   - pkg/fleet/query - host network pod queries
//   - pkg/fleet/report - CSV and log artifact sinks
//   - pkg/collector - single-cluster report collectors
//   - pkg/serializer - output formatting
package cli
