package query

import (
	"context"
	"fmt"
	"log/slog"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/fleetops/fleetscan/pkg/fleet/report"
)

// Querier lists pods running on the host network in the cluster behind
// the injected clientset.
type Querier struct {
	ClientSet kubernetes.Interface
}

// HostNetworkPods issues one cluster-wide pod list and returns a record
// per pod with hostNetwork enabled, in the order the API server returned
// them. The listing is a point-in-time snapshot with no pagination; a
// cluster whose pod set exceeds one response is a known scale limit.
//
// Only the first owner reference is projected; the node name is empty
// for unscheduled pods.
func (q *Querier) HostNetworkPods(ctx context.Context) ([]report.PodRecord, error) {
	pods, err := q.ClientSet.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	var records []report.PodRecord
	for _, pod := range pods.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !pod.Spec.HostNetwork {
			continue
		}

		rec := report.PodRecord{
			Namespace:   pod.Namespace,
			Pod:         pod.Name,
			Node:        pod.Spec.NodeName,
			HostNetwork: true,
		}
		if refs := pod.OwnerReferences; len(refs) > 0 {
			rec.OwnerKind = refs[0].Kind
			rec.OwnerName = refs[0].Name
		}
		records = append(records, rec)
	}

	slog.Debug("listed host network pods",
		slog.Int("total", len(pods.Items)),
		slog.Int("matching", len(records)))
	return records, nil
}
