// Package helm counts Helm release history from the storage Secrets
// Helm v3 writes per revision (sh.helm.release.v1.<release>.v<rev>).
// Long histories bloat etcd; releases above a revision threshold are
// flagged for cleanup.
package helm

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/fleetops/fleetscan/pkg/audit"
)

// ReportKind identifies Helm history reports.
const ReportKind = "helm release history"

const defaultMaxRevisions = 10

// Helm v3 labels its storage Secrets with owner=helm.
const helmOwnerSelector = "owner=helm"

var releaseSecretName = regexp.MustCompile(`^sh\.helm\.release\.v1\.(.+)\.v(\d+)$`)

// History is the revision count for one release.
type History struct {
	Namespace   string `json:"namespace" yaml:"namespace"`
	Release     string `json:"release" yaml:"release"`
	Revisions   int    `json:"revisions" yaml:"revisions"`
	MaxRevision int    `json:"maxRevision" yaml:"maxRevision"`
	Flagged     bool   `json:"flagged" yaml:"flagged"`
}

// Summary aggregates release histories across the cluster.
type Summary struct {
	Releases     []History `json:"releases" yaml:"releases"`
	Total        int       `json:"total" yaml:"total"`
	Flagged      int       `json:"flagged" yaml:"flagged"`
	MaxRevisions int       `json:"maxRevisions" yaml:"maxRevisions"`
}

// Collector counts release revisions over an injected clientset.
type Collector struct {
	ClientSet kubernetes.Interface

	// MaxRevisions flags releases with more revisions than this.
	// Defaults to 10.
	MaxRevisions int
}

// Collect lists Helm storage Secrets cluster-wide and aggregates
// revision counts per namespace and release.
func (c *Collector) Collect(ctx context.Context) (*audit.Report, error) {
	secrets, err := c.ClientSet.CoreV1().Secrets("").List(ctx, metav1.ListOptions{LabelSelector: helmOwnerSelector})
	if err != nil {
		return nil, fmt.Errorf("failed to list helm release secrets: %w", err)
	}

	maxRevisions := c.MaxRevisions
	if maxRevisions <= 0 {
		maxRevisions = defaultMaxRevisions
	}

	type key struct{ namespace, release string }
	histories := map[key]*History{}

	for _, secret := range secrets.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := releaseSecretName.FindStringSubmatch(secret.Name)
		if m == nil {
			continue
		}
		revision, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		k := key{namespace: secret.Namespace, release: m[1]}
		h, ok := histories[k]
		if !ok {
			h = &History{Namespace: k.namespace, Release: k.release}
			histories[k] = h
		}
		h.Revisions++
		if revision > h.MaxRevision {
			h.MaxRevision = revision
		}
	}

	summary := Summary{MaxRevisions: maxRevisions}
	for _, h := range histories {
		h.Flagged = h.Revisions > maxRevisions
		if h.Flagged {
			summary.Flagged++
		}
		summary.Releases = append(summary.Releases, *h)
	}
	summary.Total = len(summary.Releases)

	sort.Slice(summary.Releases, func(i, j int) bool {
		a, b := summary.Releases[i], summary.Releases[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		return a.Release < b.Release
	})

	slog.Debug("counted helm release history",
		slog.Int("releases", summary.Total),
		slog.Int("flagged", summary.Flagged))

	return &audit.Report{
		Kind:        ReportKind,
		GeneratedAt: time.Now().UTC(),
		Data:        summary,
	}, nil
}
