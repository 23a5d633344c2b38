package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

// Step is one external tool invocation: an executable with fixed arguments
// and a set of target paths, resolved against Dir.
type Step struct {
	Name       string
	Executable string
	Args       []string
	Paths      []string
	Dir        string
}

// RunResult records the outcome of one executed step.
type RunResult struct {
	StepName string
	ExitCode int
	Duration time.Duration
	Err      error // non-nil when the step could not be resolved or started
}

// Succeeded reports whether the step exited cleanly.
func (r RunResult) Succeeded() bool { return r.ExitCode == 0 }

// Reporter receives progress notifications during a run.
type Reporter interface {
	StepStarted(step Step)
	StepFinished(result RunResult)
}

// ErrNoSteps is returned by Run for an empty step list.
var ErrNoSteps = errors.New("pipeline has no steps")

// Runner executes steps strictly in order. Each step blocks until its
// process terminates; no two steps ever run concurrently, since the tools
// commonly rewrite the same files.
type Runner struct {
	// Stdout and Stderr are handed to each tool unmodified. They default
	// to the process's own streams.
	Stdout io.Writer
	Stderr io.Writer

	// FailFast stops the run after the first failing step. The default is
	// to run every step regardless of earlier failures.
	FailFast bool

	Reporter Reporter
}

// Run executes every step in order and returns one RunResult per executed
// step, in input order. A failing step does not abort the run unless
// FailFast is set; a missing executable is recorded as a failed result and
// later steps still run.
func (r *Runner) Run(ctx context.Context, steps []Step) ([]RunResult, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	results := make([]RunResult, 0, len(steps))
	for _, step := range steps {
		if r.Reporter != nil {
			r.Reporter.StepStarted(step)
		}

		result := r.runStep(ctx, step)
		results = append(results, result)

		if r.Reporter != nil {
			r.Reporter.StepFinished(result)
		}

		if r.FailFast && !result.Succeeded() {
			break
		}
	}

	return results, nil
}

// Aggregate returns 0 when every step succeeded, otherwise the exit code of
// the first failing step. The original shell pipeline exited with the last
// step's code, which masked earlier failures; that is deliberately not
// reproduced here.
func Aggregate(results []RunResult) int {
	for _, result := range results {
		if !result.Succeeded() {
			return result.ExitCode
		}
	}
	return 0
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
