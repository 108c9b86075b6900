package scan

import (
	"context"

	"github.com/fleetops/fleetscan/pkg/fleet/query"
	"github.com/fleetops/fleetscan/pkg/fleet/report"
	"github.com/fleetops/fleetscan/pkg/fleet/session"
	"github.com/fleetops/fleetscan/pkg/k8s/client"
)

// KubeAPI is the production ClusterAPI: activation through the external
// login command, queries through a typed client built against whatever
// context the login left active. The client is rebuilt per query because
// activation mutates the kubeconfig between clusters.
type KubeAPI struct {
	Login      *session.LoginActivator
	Kubeconfig string
}

// NewKubeAPI builds a KubeAPI using the given login command name and
// kubeconfig path (both may be empty for the defaults).
func NewKubeAPI(loginCommand, kubeconfig string) *KubeAPI {
	return &KubeAPI{
		Login:      &session.LoginActivator{Command: loginCommand},
		Kubeconfig: kubeconfig,
	}
}

// CheckAvailable verifies the external login command resolves on PATH.
func (a *KubeAPI) CheckAvailable() error {
	return a.Login.CheckAvailable()
}

// Activate switches the ambient kubeconfig to the cluster.
func (a *KubeAPI) Activate(ctx context.Context, cluster string) error {
	return a.Login.Activate(ctx, cluster)
}

// CurrentContext returns the kubeconfig's active context name.
func (a *KubeAPI) CurrentContext() (string, error) {
	return client.CurrentContext(a.Kubeconfig)
}

// HostNetworkPods lists host network pods in the active cluster.
func (a *KubeAPI) HostNetworkPods(ctx context.Context) ([]report.PodRecord, error) {
	clientSet, _, err := client.BuildKubeClient(a.Kubeconfig)
	if err != nil {
		return nil, err
	}
	q := &query.Querier{ClientSet: clientSet}
	return q.HostNetworkPods(ctx)
}
