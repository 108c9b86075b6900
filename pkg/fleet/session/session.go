package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultLoginCommand is the external command used to switch the ambient
// kubeconfig to a cluster.
const DefaultLoginCommand = "login"

// Activator switches the ambient Kubernetes configuration to a cluster.
// Activation is a single attempt: login failures are assumed to be
// configuration problems needing human intervention, so callers skip the
// cluster rather than retry.
type Activator interface {
	Activate(ctx context.Context, cluster string) error
}

// LoginActivator activates clusters by running an external,
// pre-authenticated login command. The command is expected to mutate the
// current kubeconfig context as a side effect, the same way
// `kubectl config use-context` would.
type LoginActivator struct {
	// Command is the login executable name. Defaults to
	// DefaultLoginCommand when empty.
	Command string
}

// CheckAvailable verifies the login command resolves on PATH. Called at
// startup so a missing tool fails the run before any output is created.
func (a *LoginActivator) CheckAvailable() error {
	if _, err := exec.LookPath(a.command()); err != nil {
		return fmt.Errorf("required command %q not found on PATH: %w", a.command(), err)
	}
	return nil
}

// Activate runs `<command> <cluster>` and waits for it to finish. Stderr
// from the login command is folded into the returned error.
func (a *LoginActivator) Activate(ctx context.Context, cluster string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.command(), cluster)
	cmd.Stderr = &stderr

	slog.Debug("activating cluster context",
		slog.String("command", a.command()),
		slog.String("cluster", cluster))

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("login %s: %w: %s", cluster, err, msg)
		}
		return fmt.Errorf("login %s: %w", cluster, err)
	}
	return nil
}

func (a *LoginActivator) command() string {
	if a.Command == "" {
		return DefaultLoginCommand
	}
	return a.Command
}
