package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/systemstart/checkrun/pkg/runner"
)

func TestStepStarted_Banner(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.StepStarted(runner.Step{Name: "lint"})

	out := buf.String()
	if !strings.Contains(out, "── lint ") {
		t.Errorf("banner missing step name: %q", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "─") {
		t.Errorf("banner missing trailing rule: %q", out)
	}
}

func TestStepFinished(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.StepFinished(runner.RunResult{StepName: "lint", ExitCode: 0, Duration: 12 * time.Millisecond})
	p.StepFinished(runner.RunResult{StepName: "format", ExitCode: 2})

	out := buf.String()
	if !strings.Contains(out, "✓ lint") {
		t.Errorf("missing pass line: %q", out)
	}
	if !strings.Contains(out, "✗ format (exit 2)") {
		t.Errorf("missing fail line: %q", out)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Summary([]runner.RunResult{
		{StepName: "upgrade", ExitCode: 0},
		{StepName: "lint", ExitCode: 1},
		{StepName: "format", ExitCode: 0},
	})

	out := buf.String()
	if !strings.Contains(out, "1 step(s) failed") {
		t.Errorf("missing failure summary: %q", out)
	}
}

func TestSummary_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Summary([]runner.RunResult{{StepName: "lint", ExitCode: 0}})

	if !strings.Contains(buf.String(), "all steps passed") {
		t.Errorf("missing pass summary: %q", buf.String())
	}
}
