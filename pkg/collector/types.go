package collector

import (
	"context"

	"github.com/fleetops/fleetscan/pkg/audit"
)

// Collector defines the interface for collecting a fleet report from
// the active cluster. Implementations gather data from the Kubernetes
// API: ingress TLS coverage, tenant resource usage, Helm release
// history. All collectors must support context-based cancellation.
type Collector interface {
	Collect(ctx context.Context) (*audit.Report, error)
}
