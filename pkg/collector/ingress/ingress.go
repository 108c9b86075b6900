// Package ingress validates Ingress TLS coverage: rule hosts that no
// spec.tls entry covers, and referenced TLS secrets that are missing or
// of the wrong type.
package ingress

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/fleetops/fleetscan/pkg/audit"
)

// ReportKind identifies ingress TLS coverage reports.
const ReportKind = "ingress tls coverage"

// Status is the finding for one Ingress.
type Status struct {
	Namespace        string   `json:"namespace" yaml:"namespace"`
	Name             string   `json:"name" yaml:"name"`
	UncoveredHosts   []string `json:"uncoveredHosts,omitempty" yaml:"uncoveredHosts,omitempty"`
	MissingSecrets   []string `json:"missingSecrets,omitempty" yaml:"missingSecrets,omitempty"`
	WrongTypeSecrets []string `json:"wrongTypeSecrets,omitempty" yaml:"wrongTypeSecrets,omitempty"`
	Covered          bool     `json:"covered" yaml:"covered"`
}

// Summary aggregates findings across the cluster.
type Summary struct {
	Ingresses []Status `json:"ingresses" yaml:"ingresses"`
	Total     int      `json:"total" yaml:"total"`
	Uncovered int      `json:"uncovered" yaml:"uncovered"`
}

// Collector validates TLS coverage for Ingresses in one namespace, or
// cluster-wide when Namespace is empty.
type Collector struct {
	ClientSet kubernetes.Interface
	Namespace string
}

// Collect lists Ingresses and checks every rule host against the
// spec.tls host sets and every referenced secret for existence and
// kubernetes.io/tls type.
func (c *Collector) Collect(ctx context.Context) (*audit.Report, error) {
	ingresses, err := c.ClientSet.NetworkingV1().Ingresses(c.Namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ingresses: %w", err)
	}

	summary := Summary{Total: len(ingresses.Items)}
	for _, ing := range ingresses.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status := Status{Namespace: ing.Namespace, Name: ing.Name}

		var tlsHosts []string
		for _, tls := range ing.Spec.TLS {
			tlsHosts = append(tlsHosts, tls.Hosts...)

			if tls.SecretName == "" {
				continue
			}
			secret, err := c.ClientSet.CoreV1().Secrets(ing.Namespace).Get(ctx, tls.SecretName, metav1.GetOptions{})
			switch {
			case errors.IsNotFound(err):
				status.MissingSecrets = append(status.MissingSecrets, tls.SecretName)
			case err != nil:
				return nil, fmt.Errorf("failed to get secret %s/%s: %w", ing.Namespace, tls.SecretName, err)
			case secret.Type != corev1.SecretTypeTLS:
				status.WrongTypeSecrets = append(status.WrongTypeSecrets, tls.SecretName)
			}
		}

		for _, rule := range ing.Spec.Rules {
			if rule.Host == "" {
				continue
			}
			if !hostCovered(rule.Host, tlsHosts) {
				status.UncoveredHosts = append(status.UncoveredHosts, rule.Host)
			}
		}

		status.Covered = len(status.UncoveredHosts) == 0 &&
			len(status.MissingSecrets) == 0 &&
			len(status.WrongTypeSecrets) == 0
		if !status.Covered {
			summary.Uncovered++
		}
		summary.Ingresses = append(summary.Ingresses, status)
	}

	slog.Debug("validated ingress tls coverage",
		slog.Int("total", summary.Total),
		slog.Int("uncovered", summary.Uncovered))

	return &audit.Report{
		Kind:        ReportKind,
		GeneratedAt: time.Now().UTC(),
		Data:        summary,
	}, nil
}

// hostCovered reports whether host matches any TLS host entry, exactly
// or through a single-label wildcard ("*.example.com" covers
// "a.example.com" but not "example.com" or "a.b.example.com").
func hostCovered(host string, tlsHosts []string) bool {
	for _, pattern := range tlsHosts {
		if pattern == host {
			return true
		}
		if !strings.HasPrefix(pattern, "*.") {
			continue
		}
		suffix := pattern[1:] // ".example.com"
		if !strings.HasSuffix(host, suffix) {
			continue
		}
		label := strings.TrimSuffix(host, suffix)
		if label != "" && !strings.Contains(label, ".") {
			return true
		}
	}
	return false
}
