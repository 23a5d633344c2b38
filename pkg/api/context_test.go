package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMergeContext(t *testing.T) {
	global := map[string]any{"a": "G", "b": "G"}
	local := map[string]any{"b": "L", "c": "L"}

	merged := MergeContext(global, local)

	if merged["a"] != "G" || merged["b"] != "L" || merged["c"] != "L" {
		t.Errorf("unexpected merge result: %v", merged)
	}
}

func TestLoadContextFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "context.yaml")
	if err := os.WriteFile(file, []byte("pyversion: py312\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, err := LoadContextFile(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx["pyversion"] != "py312" {
		t.Errorf("unexpected context: %v", ctx)
	}
}

func TestLoadContextFile_Empty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "context.yaml")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, err := LoadContextFile(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx == nil {
		t.Fatal("expected non-nil map for empty file")
	}
}

func TestRenderStep(t *testing.T) {
	step := StepConfig{
		Name:  "upgrade",
		Run:   "pyupgrade",
		Args:  []string{"--{{ .pyversion }}-plus"},
		Paths: []string{"{{ .srcdir }}/**/*.py"},
	}
	data := map[string]any{"pyversion": "py312", "srcdir": "src"}

	rendered, err := RenderStep(step, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rendered.Args[0] != "--py312-plus" {
		t.Errorf("unexpected arg: %q", rendered.Args[0])
	}
	if rendered.Paths[0] != "src/**/*.py" {
		t.Errorf("unexpected path: %q", rendered.Paths[0])
	}
	if step.Args[0] != "--{{ .pyversion }}-plus" {
		t.Error("input step was mutated")
	}
}

func TestRenderStep_SprigFunctions(t *testing.T) {
	step := StepConfig{
		Name: "lint",
		Args: []string{"{{ .mode | upper }}"},
	}

	rendered, err := RenderStep(step, map[string]any{"mode": "check"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rendered.Args[0] != "CHECK" {
		t.Errorf("unexpected arg: %q", rendered.Args[0])
	}
}

func TestRenderStep_MissingKey(t *testing.T) {
	step := StepConfig{
		Name: "lint",
		Args: []string{"{{ .nope }}"},
	}

	_, err := RenderStep(step, map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing context key")
	}
	if !strings.Contains(err.Error(), "rendering args") {
		t.Fatalf("unexpected error: %v", err)
	}
}
