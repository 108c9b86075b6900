package session

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script on a temp PATH entry and
// returns its name.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return name
}

func TestLoginActivator_Success(t *testing.T) {
	name := writeScript(t, "fake-login", `[ "$1" = "clusterA" ] || exit 1`)
	a := &LoginActivator{Command: name}

	require.NoError(t, a.CheckAvailable())
	assert.NoError(t, a.Activate(context.Background(), "clusterA"))
}

func TestLoginActivator_FailureIncludesStderr(t *testing.T) {
	name := writeScript(t, "fake-login", `echo "no session for $1" >&2; exit 3`)
	a := &LoginActivator{Command: name}

	err := a.Activate(context.Background(), "clusterB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login clusterB")
	assert.Contains(t, err.Error(), "no session for clusterB")
}

func TestLoginActivator_MissingCommand(t *testing.T) {
	a := &LoginActivator{Command: "definitely-not-a-real-login-helper"}
	assert.Error(t, a.CheckAvailable())
}

func TestLoginActivator_DefaultCommand(t *testing.T) {
	a := &LoginActivator{}
	assert.Equal(t, DefaultLoginCommand, a.command())
}
