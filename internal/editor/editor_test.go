package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{"flag wins", "nvim", "code --wait", "nvim"},
		{"env when no flag", "", "code --wait", "code --wait"},
		{"fallback", "", "", "hx"},
		{"blank values ignored", "  ", "\t", "hx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.flag, tt.env))
		})
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func testFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "my file.conf")
	require.NoError(t, os.WriteFile(path, []byte("# x\n"), 0o644))
	return path
}

func TestOpen_PassesPathAsSingleArgument(t *testing.T) {
	requireShell(t)
	path := testFile(t)

	var out bytes.Buffer
	e := &Editor{Stdout: &out, Stderr: &out}

	err := e.Open(context.Background(), `sh -c 'printf "%s|" "$@"' editor --wait`, path)
	require.NoError(t, err)
	assert.Equal(t, "--wait|"+path+"|", out.String())
}

func TestOpen_NonZeroExitIsError(t *testing.T) {
	requireShell(t)
	path := testFile(t)

	err := (&Editor{}).Open(context.Background(), "sh -c 'exit 3'", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpawn)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestOpen_MissingBinary(t *testing.T) {
	path := testFile(t)

	err := (&Editor{}).Open(context.Background(), "hyprconf-no-such-editor-xyz", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpawn)
	assert.ErrorIs(t, err, exec.ErrNotFound)

	var spawnErr *SpawnError
	require.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, path, spawnErr.Path)
	assert.Equal(t, "hyprconf-no-such-editor-xyz", spawnErr.Command)
}

func TestOpen_EmptyCommand(t *testing.T) {
	err := (&Editor{}).Open(context.Background(), "   ", testFile(t))
	assert.ErrorIs(t, err, ErrSpawn)
	assert.True(t, strings.Contains(err.Error(), "empty command"))
}

func TestOpen_UnbalancedQuotes(t *testing.T) {
	err := (&Editor{}).Open(context.Background(), `code "--wait`, testFile(t))
	assert.ErrorIs(t, err, ErrSpawn)
}

func TestOpen_VanishedFile(t *testing.T) {
	requireShell(t)
	path := filepath.Join(t.TempDir(), "gone.conf")

	err := (&Editor{}).Open(context.Background(), "true", path)
	assert.ErrorIs(t, err, ErrSpawn)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_CancelledContext(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&Editor{}).Open(ctx, "sh -c 'sleep 5'", testFile(t))
	assert.ErrorIs(t, err, ErrSpawn)
}

func TestTerminal_UsesProcessStdio(t *testing.T) {
	e := Terminal()
	assert.Equal(t, os.Stdin, e.Stdin)
	assert.Equal(t, os.Stdout, e.Stdout)
	assert.Equal(t, os.Stderr, e.Stderr)
}
