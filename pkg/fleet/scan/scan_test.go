package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleetscan/pkg/clusterlist"
	"github.com/fleetops/fleetscan/pkg/fleet/report"
)

// stubAPI scripts per-cluster behavior for orchestrator tests.
type stubAPI struct {
	loginErr   map[string]error
	queryErr   map[string]error
	pods       map[string][]report.PodRecord
	contextErr error
	active     string
	activated  []string
}

func (s *stubAPI) Activate(_ context.Context, cluster string) error {
	s.activated = append(s.activated, cluster)
	if err := s.loginErr[cluster]; err != nil {
		return err
	}
	s.active = cluster
	return nil
}

func (s *stubAPI) CurrentContext() (string, error) {
	if s.contextErr != nil {
		return "", s.contextErr
	}
	return "ctx-" + s.active, nil
}

func (s *stubAPI) HostNetworkPods(context.Context) ([]report.PodRecord, error) {
	if err := s.queryErr[s.active]; err != nil {
		return nil, err
	}
	return s.pods[s.active], nil
}

func writeClusters(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusters.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(names, "\n")+"\n"), 0o644))
	return path
}

func newTestScanner(t *testing.T, clustersFile string, api ClusterAPI) *Scanner {
	t.Helper()
	return &Scanner{
		Options: Options{
			ClustersFile: clustersFile,
			BaseID:       "test",
			OutDir:       t.TempDir(),
		},
		API: api,
		Now: func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) },
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func podFor(ns, name string) report.PodRecord {
	return report.PodRecord{Namespace: ns, Pod: name, Node: "node-1", HostNetwork: true, OwnerKind: "DaemonSet", OwnerName: name}
}

func TestScanner_ArtifactNaming(t *testing.T) {
	api := &stubAPI{}
	s := newTestScanner(t, writeClusters(t, "a"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "hostnetwork-pods-test-20260830-100000.csv", filepath.Base(res.CSVPath))
	assert.Equal(t, "scan-hostnetwork-test-20260830-100000.log", filepath.Base(res.LogPath))
	// Shared timestamp keeps the two artifacts a matched pair.
	assert.Equal(t, filepath.Dir(res.CSVPath), filepath.Dir(res.LogPath))
}

func TestScanner_PartialFailureIsolation(t *testing.T) {
	api := &stubAPI{
		loginErr: map[string]error{"b": fmt.Errorf("session expired")},
		pods: map[string][]report.PodRecord{
			"a": {podFor("kube-system", "proxy-a")},
			"c": {podFor("kube-system", "proxy-c")},
		},
	}
	s := newTestScanner(t, writeClusters(t, "a", "b", "c"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, res.PodsSeen)

	rows := readLines(t, res.CSVPath)
	require.Len(t, rows, 3)
	assert.Equal(t, report.Header, rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "a,ctx-a,kube-system,proxy-a,"))
	assert.True(t, strings.HasPrefix(rows[2], "c,ctx-c,kube-system,proxy-c,"))

	logText := strings.Join(readLines(t, res.LogPath), "\n")
	assert.Contains(t, logText, "WARN: login failed for cluster b")
}

func TestScanner_OrderPreservation(t *testing.T) {
	api := &stubAPI{pods: map[string][]report.PodRecord{
		"zeta":  {podFor("ns", "p-zeta")},
		"alpha": {podFor("ns", "p-alpha")},
	}}
	s := newTestScanner(t, writeClusters(t, "zeta", "alpha"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	rows := readLines(t, res.CSVPath)
	require.Len(t, rows, 3)
	// File order, not lexical order.
	assert.True(t, strings.HasPrefix(rows[1], "zeta,"))
	assert.True(t, strings.HasPrefix(rows[2], "alpha,"))
	assert.Equal(t, []string{"zeta", "alpha"}, api.activated)
}

func TestScanner_EmptyResultRun(t *testing.T) {
	api := &stubAPI{}
	s := newTestScanner(t, writeClusters(t, "a"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Scanned)
	assert.Zero(t, res.PodsSeen)

	rows := readLines(t, res.CSVPath)
	require.Len(t, rows, 1)
	assert.Equal(t, report.Header, rows[0])
}

func TestScanner_FilterExclusivity(t *testing.T) {
	api := &stubAPI{pods: map[string][]report.PodRecord{
		"a": {podFor("ns", "p-a")},
		"b": {podFor("ns", "p-b")},
		"c": {podFor("ns", "p-c")},
	}}
	s := newTestScanner(t, writeClusters(t, "a", "b", "c"), api)
	s.Filter = clusterlist.ParseFilter("a,c")

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"a", "c"}, api.activated)

	logText := strings.Join(readLines(t, res.LogPath), "\n")
	assert.Contains(t, logText, "skipping cluster b")

	rows := readLines(t, res.CSVPath)
	require.Len(t, rows, 3)
	assert.NotContains(t, strings.Join(rows, "\n"), "p-b")
}

func TestScanner_FilterIdempotence(t *testing.T) {
	run := func() string {
		api := &stubAPI{pods: map[string][]report.PodRecord{
			"a": {podFor("ns", "p-1"), podFor("ns", "p-2")},
			"c": {podFor("ns", "p-3")},
		}}
		s := newTestScanner(t, writeClusters(t, "a", "b", "c"), api)
		s.Filter = clusterlist.ParseFilter("{a,c}")

		res, err := s.Run(context.Background())
		require.NoError(t, err)
		data, err := os.ReadFile(res.CSVPath)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, run(), run())
}

func TestScanner_QueryFailureTreatedAsZeroMatches(t *testing.T) {
	api := &stubAPI{queryErr: map[string]error{"a": fmt.Errorf("connection refused")}}
	s := newTestScanner(t, writeClusters(t, "a"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	// The run still succeeds and the cluster still counts as scanned.
	assert.Equal(t, 1, res.Scanned)
	assert.Zero(t, res.PodsSeen)

	logText := strings.Join(readLines(t, res.LogPath), "\n")
	assert.Contains(t, logText, "WARN: pod query failed for cluster a")
}

func TestScanner_ContextResolutionFallback(t *testing.T) {
	api := &stubAPI{
		contextErr: fmt.Errorf("no current context"),
		pods:       map[string][]report.PodRecord{"a": {podFor("ns", "p")}},
	}
	s := newTestScanner(t, writeClusters(t, "a"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	rows := readLines(t, res.CSVPath)
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[1], "a,(unknown),"))
}

func TestScanner_DuplicateClustersScanTwice(t *testing.T) {
	api := &stubAPI{pods: map[string][]report.PodRecord{"a": {podFor("ns", "p")}}}
	s := newTestScanner(t, writeClusters(t, "a", "a"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, []string{"a", "a"}, api.activated)
	assert.Len(t, readLines(t, res.CSVPath), 3)
}

func TestScanner_MissingClusterListIsStartupError(t *testing.T) {
	s := newTestScanner(t, filepath.Join(t.TempDir(), "missing.txt"), &stubAPI{})
	outDir := s.OutDir

	_, err := s.Run(context.Background())
	require.Error(t, err)

	// Startup-class failure: no partial artifacts are created.
	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestScanner_SummaryNamesArtifacts(t *testing.T) {
	api := &stubAPI{}
	s := newTestScanner(t, writeClusters(t, "a"), api)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	logText := strings.Join(readLines(t, res.LogPath), "\n")
	assert.Contains(t, logText, res.CSVPath)
	assert.Contains(t, logText, res.LogPath)
}
