package scan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Scan run metrics
	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetscan_scan_duration_seconds",
			Help:    "Time taken to complete a full fleet scan run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	clusterScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetscan_cluster_scan_duration_seconds",
			Help:    "Time taken to scan a single cluster",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	clustersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetscan_clusters_total",
			Help: "Clusters handled by scan runs, by outcome",
		},
		[]string{"outcome"}, // scanned, skipped, login_failed, query_failed
	)

	hostNetworkPodsFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetscan_hostnetwork_pods_total",
			Help: "Host network pods reported across scan runs",
		},
	)
)
