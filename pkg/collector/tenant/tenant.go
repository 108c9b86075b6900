// Package tenant summarizes per-namespace resource usage: pod and
// container counts, CPU/memory requests and limits, and container image
// counts grouped by registry host.
package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/distribution/reference"
	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/fleetops/fleetscan/pkg/audit"
)

// ReportKind identifies tenant usage reports.
const ReportKind = "tenant usage"

const defaultConcurrency = 4

// Usage is the summary for one namespace.
type Usage struct {
	Namespace       string         `json:"namespace" yaml:"namespace"`
	Pods            int            `json:"pods" yaml:"pods"`
	Containers      int            `json:"containers" yaml:"containers"`
	CPURequests     string         `json:"cpuRequests" yaml:"cpuRequests"`
	CPULimits       string         `json:"cpuLimits" yaml:"cpuLimits"`
	MemoryRequests  string         `json:"memoryRequests" yaml:"memoryRequests"`
	MemoryLimits    string         `json:"memoryLimits" yaml:"memoryLimits"`
	ImageRegistries map[string]int `json:"imageRegistries,omitempty" yaml:"imageRegistries,omitempty"`
}

// Summary aggregates usage across namespaces.
type Summary struct {
	Namespaces []Usage `json:"namespaces" yaml:"namespaces"`
	TotalPods  int     `json:"totalPods" yaml:"totalPods"`
}

// Collector summarizes tenant usage over an injected clientset.
// Namespaces are listed once, then pods are listed per namespace with a
// bounded fan-out; a namespace whose pod list fails is skipped with a
// warning rather than failing the whole report.
type Collector struct {
	ClientSet kubernetes.Interface

	// Selector restricts the namespace listing when non-empty.
	Selector string

	// Concurrency bounds the per-namespace fan-out. Defaults to 4.
	Concurrency int
}

// Collect builds the tenant usage summary.
func (c *Collector) Collect(ctx context.Context) (*audit.Report, error) {
	namespaces, err := c.ClientSet.CoreV1().Namespaces().List(ctx, metav1.ListOptions{LabelSelector: c.Selector})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	limit := c.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var mu sync.Mutex
	var usages []Usage
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, ns := range namespaces.Items {
		g.Go(func() error {
			usage, err := c.collectNamespace(ctx, ns.Name)
			if err != nil {
				slog.Warn("skipping namespace", slog.String("namespace", ns.Name), slog.String("error", err.Error()))
				return nil
			}
			mu.Lock()
			usages = append(usages, *usage)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(usages, func(i, j int) bool { return usages[i].Namespace < usages[j].Namespace })

	summary := Summary{Namespaces: usages}
	for _, u := range usages {
		summary.TotalPods += u.Pods
	}

	return &audit.Report{
		Kind:        ReportKind,
		GeneratedAt: time.Now().UTC(),
		Data:        summary,
	}, nil
}

func (c *Collector) collectNamespace(ctx context.Context, namespace string) (*Usage, error) {
	pods, err := c.ClientSet.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods in %q: %w", namespace, err)
	}

	usage := &Usage{
		Namespace:       namespace,
		Pods:            len(pods.Items),
		ImageRegistries: map[string]int{},
	}

	cpuRequests := resource.Quantity{}
	cpuLimits := resource.Quantity{}
	memRequests := resource.Quantity{}
	memLimits := resource.Quantity{}

	for _, pod := range pods.Items {
		for _, container := range pod.Spec.Containers {
			usage.Containers++
			addQuantity(&cpuRequests, container.Resources.Requests, corev1.ResourceCPU)
			addQuantity(&cpuLimits, container.Resources.Limits, corev1.ResourceCPU)
			addQuantity(&memRequests, container.Resources.Requests, corev1.ResourceMemory)
			addQuantity(&memLimits, container.Resources.Limits, corev1.ResourceMemory)
			usage.ImageRegistries[registryOf(container.Image)]++
		}
	}

	usage.CPURequests = cpuRequests.String()
	usage.CPULimits = cpuLimits.String()
	usage.MemoryRequests = memRequests.String()
	usage.MemoryLimits = memLimits.String()

	if len(usage.ImageRegistries) == 0 {
		usage.ImageRegistries = nil
	}
	return usage, nil
}

func addQuantity(total *resource.Quantity, list corev1.ResourceList, name corev1.ResourceName) {
	if q, ok := list[name]; ok {
		total.Add(q)
	}
}

// registryOf extracts the registry host from a container image
// reference, normalizing bare references the way the container runtime
// would ("nginx" -> "docker.io").
func registryOf(image string) string {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return "(unparseable)"
	}
	return reference.Domain(named)
}
