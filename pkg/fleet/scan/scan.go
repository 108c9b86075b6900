package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/fleetops/fleetscan/pkg/clusterlist"
	"github.com/fleetops/fleetscan/pkg/fleet/report"
)

const runTimestampLayout = "20060102-150405"

// ClusterAPI is the collaborator boundary for per-cluster operations.
// The production implementation activates clusters through an external
// login command and queries them with a typed Kubernetes client; tests
// substitute stubs.
type ClusterAPI interface {
	// Activate switches the ambient configuration to the cluster.
	Activate(ctx context.Context, cluster string) error

	// CurrentContext returns the active context name after activation.
	// Best effort: callers downgrade failures to a placeholder.
	CurrentContext() (string, error)

	// HostNetworkPods lists pods with hostNetwork enabled in the
	// currently active cluster.
	HostNetworkPods(ctx context.Context) ([]report.PodRecord, error)
}

// Options configures a scan run.
type Options struct {
	// ClustersFile is the resolved path of the cluster list file.
	ClustersFile string

	// BaseID names the run in both artifact file names: the preset name,
	// or the cluster list file name with its extension removed.
	BaseID string

	// OutDir is the directory the CSV and log artifacts are written to.
	// Created if absent.
	OutDir string

	// Filter restricts the scan to the listed clusters. Empty scans all.
	Filter clusterlist.Filter

	// QPS paces cluster processing when positive. Zero disables pacing.
	QPS float64
}

// Result summarizes a completed run.
type Result struct {
	CSVPath  string
	LogPath  string
	Scanned  int
	Skipped  int
	Failed   int
	PodsSeen int
}

// Scanner drives the fleet scan: for each cluster in the list, activate
// a session, query host network pods, and route results to the two
// report sinks. Clusters are processed strictly sequentially in file
// order; per-cluster failures are isolated and never abort the run.
type Scanner struct {
	Options

	API ClusterAPI

	// Console mirrors the human log. Defaults to os.Stderr.
	Console io.Writer

	// Now supplies the shared run timestamp. Defaults to time.Now.
	Now func() time.Time
}

// New creates a Scanner with default console and clock.
func New(opts Options, api ClusterAPI) *Scanner {
	return &Scanner{Options: opts, API: api, Console: os.Stderr, Now: time.Now}
}

// Run executes the scan. Errors returned here are startup-class (bad
// cluster list, unwritable output directory); everything after the sinks
// open is logged and absorbed so one bad cluster cannot prevent
// reporting on the rest.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	clusters, err := clusterlist.Load(s.ClustersFile)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", s.OutDir, err)
	}

	// One timestamp for both artifacts, so they are always a matched pair.
	ts := s.timestamp().Format(runTimestampLayout)
	res := &Result{
		CSVPath: filepath.Join(s.OutDir, fmt.Sprintf("hostnetwork-pods-%s-%s.csv", s.BaseID, ts)),
		LogPath: filepath.Join(s.OutDir, fmt.Sprintf("scan-hostnetwork-%s-%s.log", s.BaseID, ts)),
	}

	csvSink, err := report.OpenCSV(res.CSVPath)
	if err != nil {
		return nil, err
	}
	defer csvSink.Close()

	logSink, err := report.OpenLog(res.LogPath, s.Console)
	if err != nil {
		return nil, err
	}
	defer logSink.Close()

	if err := csvSink.WriteHeader(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		scanDuration.Observe(time.Since(start).Seconds())
	}()

	logSink.Printf("starting scan run %s", uuid.NewString())
	logSink.Printf("cluster list: %s (%d clusters)", s.ClustersFile, len(clusters))
	if len(s.Filter) > 0 {
		logSink.Printf("limiting scan to %d cluster(s)", len(s.Filter))
	}

	var limiter *rate.Limiter
	if s.QPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.QPS), 1)
	}

	for _, cluster := range clusters {
		if !s.Filter.Allows(cluster) {
			logSink.Printf("skipping cluster %s (not in --limit-cluster)", cluster)
			clustersTotal.WithLabelValues("skipped").Inc()
			res.Skipped++
			continue
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		s.scanCluster(ctx, cluster, csvSink, logSink, res)
	}

	logSink.Printf("scan complete: %d cluster(s) scanned, %d skipped, %d failed, %d host network pod(s) found",
		res.Scanned, res.Skipped, res.Failed, res.PodsSeen)
	logSink.Printf("csv report: %s", res.CSVPath)
	logSink.Printf("scan log: %s", res.LogPath)

	return res, nil
}

// scanCluster handles one cluster end to end. Failures are written to
// the log and absorbed.
func (s *Scanner) scanCluster(ctx context.Context, cluster string, csvSink *report.CSVSink, logSink *report.LogSink, res *Result) {
	clusterStart := time.Now()
	defer func() {
		clusterScanDuration.Observe(time.Since(clusterStart).Seconds())
	}()

	logSink.Printf("processing cluster %s", cluster)

	if err := s.API.Activate(ctx, cluster); err != nil {
		logSink.Warnf("login failed for cluster %s: %v", cluster, err)
		clustersTotal.WithLabelValues("login_failed").Inc()
		res.Failed++
		return
	}

	contextName, err := s.API.CurrentContext()
	if err != nil {
		logSink.Printf("could not resolve context for cluster %s, recording %s", cluster, report.UnknownContext)
		contextName = report.UnknownContext
	} else {
		logSink.Printf("active context: %s", contextName)
	}

	logSink.Printf("querying host network pods in cluster %s", cluster)
	records, err := s.API.HostNetworkPods(ctx)
	if err != nil {
		// Treated the same as zero matches for the CSV, but the log
		// keeps the two cases distinguishable.
		logSink.Warnf("pod query failed for cluster %s, treating as zero matches: %v", cluster, err)
		clustersTotal.WithLabelValues("query_failed").Inc()
		records = nil
	}

	for _, rec := range records {
		rec.Cluster = cluster
		rec.Context = contextName
		logSink.Printf("hostNetwork pod %s/%s on node %s (owner %s/%s)",
			rec.Namespace, rec.Pod, rec.Node, rec.OwnerKind, rec.OwnerName)
		if err := csvSink.WriteRecord(rec); err != nil {
			logSink.Warnf("failed to record pod %s/%s: %v", rec.Namespace, rec.Pod, err)
			continue
		}
		hostNetworkPodsFound.Inc()
		res.PodsSeen++
	}

	logSink.Printf("cluster %s done: %d matching pod(s)", cluster, len(records))
	clustersTotal.WithLabelValues("scanned").Inc()
	res.Scanned++
}

func (s *Scanner) timestamp() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
