package client

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// BuildKubeClient creates a Kubernetes client from the given kubeconfig
// file.
//
// Parameters:
//   - kubeconfig: Path to kubeconfig file. If empty, uses automatic discovery:
//     1. KUBECONFIG environment variable
//     2. ~/.kube/config (if it exists)
//     3. In-cluster configuration (service account)
//
// The fleet scanner rebuilds the client after every context switch.
// There is deliberately no cached singleton here: the externally managed
// login command mutates the kubeconfig between clusters, and a cached
// client would keep talking to the previous cluster.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := clientcmd.BuildConfigFromFlags("", resolveKubeconfig(kubeconfig))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

// CurrentContext returns the name of the active context in the
// kubeconfig at the given path, or the discovered default when empty.
func CurrentContext(kubeconfig string) (string, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path := resolveKubeconfig(kubeconfig); path != "" {
		rules.ExplicitPath = path
	}

	raw, err := rules.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	if raw.CurrentContext == "" {
		return "", fmt.Errorf("no current context set in kubeconfig")
	}
	return raw.CurrentContext, nil
}

func resolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	path := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ""
	}
	return path
}
