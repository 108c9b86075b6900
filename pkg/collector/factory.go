package collector

import (
	"k8s.io/client-go/kubernetes"

	"github.com/fleetops/fleetscan/pkg/collector/helm"
	"github.com/fleetops/fleetscan/pkg/collector/ingress"
	"github.com/fleetops/fleetscan/pkg/collector/tenant"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateIngressTLSCollector() Collector
	CreateTenantUsageCollector() Collector
	CreateHelmHistoryCollector() Collector
}

// DefaultFactory creates collectors against a shared clientset.
type DefaultFactory struct {
	ClientSet kubernetes.Interface

	// Namespace restricts ingress collection when non-empty.
	Namespace string

	// Selector restricts tenant namespace listing when non-empty.
	Selector string

	// MaxRevisions is the Helm history threshold above which a release
	// is flagged.
	MaxRevisions int

	// Concurrency bounds the tenant usage per-namespace fan-out.
	Concurrency int
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(clientSet kubernetes.Interface) *DefaultFactory {
	return &DefaultFactory{
		ClientSet:    clientSet,
		MaxRevisions: 10,
		Concurrency:  4,
	}
}

// CreateIngressTLSCollector creates an ingress TLS coverage collector.
func (f *DefaultFactory) CreateIngressTLSCollector() Collector {
	return &ingress.Collector{
		ClientSet: f.ClientSet,
		Namespace: f.Namespace,
	}
}

// CreateTenantUsageCollector creates a tenant usage collector.
func (f *DefaultFactory) CreateTenantUsageCollector() Collector {
	return &tenant.Collector{
		ClientSet:   f.ClientSet,
		Selector:    f.Selector,
		Concurrency: f.Concurrency,
	}
}

// CreateHelmHistoryCollector creates a Helm release history collector.
func (f *DefaultFactory) CreateHelmHistoryCollector() Collector {
	return &helm.Collector{
		ClientSet:    f.ClientSet,
		MaxRevisions: f.MaxRevisions,
	}
}
