package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ToolNotFound(t *testing.T) {
	requireShell(t)

	r := &Runner{}
	steps := []Step{
		{Name: "missing", Executable: "definitely-not-a-real-tool-4a7f"},
		shStep("after", "exit 0"),
	}

	results, err := r.Run(context.Background(), steps)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, exitCodeNotFound, results[0].ExitCode)
	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "missing")
	assert.True(t, results[1].Succeeded(), "later steps still run after a missing tool")
}

func TestRun_ExitCodePropagated(t *testing.T) {
	requireShell(t)

	r := &Runner{}
	results, err := r.Run(context.Background(), []Step{shStep("fails", "exit 3")})
	require.NoError(t, err)
	assert.Equal(t, 3, results[0].ExitCode)
	assert.Nil(t, results[0].Err)
}

func TestRun_OutputPassthrough(t *testing.T) {
	requireShell(t)

	var stdout, stderr bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &stderr}

	_, err := r.Run(context.Background(), []Step{
		shStep("noisy", "echo out; echo err >&2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestRun_PathsAppendedAfterArgs(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout}

	step := Step{
		Name:       "echo-args",
		Executable: "sh",
		Args:       []string{"-c", `echo "$@"`, "argv0"},
		Paths:      []string{"src"},
		Dir:        dir,
	}

	_, err := r.Run(context.Background(), []Step{step})
	require.NoError(t, err)
	assert.Equal(t, "src\n", stdout.String())
}
