package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"time"
)

// Exit codes follow shell conventions for steps that never produced one.
const (
	exitCodeNotFound   = 127 // executable not resolvable on PATH
	exitCodeNotStarted = 126 // resolved but could not be started
)

func (r *Runner) runStep(ctx context.Context, step Step) RunResult {
	start := time.Now()

	if _, err := exec.LookPath(step.Executable); err != nil {
		slog.Error("executable not found in PATH", "step", step.Name, "executable", step.Executable)
		return RunResult{
			StepName: step.Name,
			ExitCode: exitCodeNotFound,
			Duration: time.Since(start),
			Err:      fmt.Errorf("step %q: %w", step.Name, err),
		}
	}

	targets, err := ExpandPaths(step.Dir, step.Paths)
	if err != nil {
		return RunResult{
			StepName: step.Name,
			ExitCode: exitCodeNotStarted,
			Duration: time.Since(start),
			Err:      fmt.Errorf("step %q: expanding paths: %w", step.Name, err),
		}
	}

	args := append(slices.Clone(step.Args), targets...)
	slog.Debug("running step", "step", step.Name, "executable", step.Executable, "args", args)

	cmd := exec.CommandContext(ctx, step.Executable, args...)
	cmd.Dir = step.Dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	runErr := cmd.Run()
	result := RunResult{StepName: step.Name, Duration: time.Since(start)}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = exitCodeNotStarted
			result.Err = fmt.Errorf("step %q: %w", step.Name, runErr)
		}
	}

	return result
}
