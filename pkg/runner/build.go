package runner

import (
	"fmt"

	"github.com/systemstart/checkrun/pkg/api"
)

// BuildSteps renders the configured pipeline into executable steps. The
// config's own context is merged over globalContext (local keys win) and
// applied to each step's args and paths. Steps execute with workDir as
// their working directory.
func BuildSteps(cfg *api.Config, workDir string, globalContext map[string]any) ([]Step, error) {
	data := api.MergeContext(globalContext, cfg.Context)

	steps := make([]Step, 0, len(cfg.Pipeline))
	for _, stepCfg := range cfg.Pipeline {
		rendered, err := api.RenderStep(stepCfg, data)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", stepCfg.Name, err)
		}

		steps = append(steps, Step{
			Name:       rendered.Name,
			Executable: rendered.Run,
			Args:       rendered.Args,
			Paths:      rendered.Paths,
			Dir:        workDir,
		})
	}

	return steps, nil
}
