package api

import "fmt"

// Validate checks the pipeline configuration for errors.
// An invalid configuration is rejected before any step runs.
func (c *Config) Validate() error {
	if len(c.Pipeline) == 0 {
		return fmt.Errorf("pipeline has no steps")
	}

	names := make(map[string]int)

	for i, step := range c.Pipeline {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if step.Run == "" {
			return fmt.Errorf("step %q: run is required", step.Name)
		}
	}

	return nil
}
