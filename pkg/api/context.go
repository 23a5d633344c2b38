package api

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// LoadContextFile reads a YAML file and returns it as a map.
func LoadContextFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var ctx map[string]any
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing context file: %w", err)
	}

	if ctx == nil {
		ctx = make(map[string]any)
	}

	return ctx, nil
}

// MergeContext performs a shallow merge of local context over global context.
// Local keys override global keys at the top level.
func MergeContext(global, local map[string]any) map[string]any {
	merged := make(map[string]any, len(global)+len(local))
	maps.Copy(merged, global)
	maps.Copy(merged, local)
	return merged
}

// RenderStep renders the step's args and paths as templates against data.
// The step itself is not mutated; a rendered copy is returned.
func RenderStep(step StepConfig, data map[string]any) (StepConfig, error) {
	rendered := step

	args, err := renderAll(step.Name, step.Args, data)
	if err != nil {
		return StepConfig{}, fmt.Errorf("rendering args: %w", err)
	}
	rendered.Args = args

	paths, err := renderAll(step.Name, step.Paths, data)
	if err != nil {
		return StepConfig{}, fmt.Errorf("rendering paths: %w", err)
	}
	rendered.Paths = paths

	return rendered, nil
}

func renderAll(stepName string, values []string, data map[string]any) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		tmpl, err := template.New(stepName).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(v)
		if err != nil {
			return nil, fmt.Errorf("parsing template %q: %w", v, err)
		}

		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("rendering %q: %w", v, err)
		}
		out = append(out, sb.String())
	}
	return out, nil
}
