package api

// DefaultConfigFilename is looked up in the working directory when -config is not set.
const DefaultConfigFilename = ".checkrun.yaml"

// Config is the .checkrun.yaml configuration format.
type Config struct {
	Context  map[string]any `yaml:"context"`
	Pipeline []StepConfig   `yaml:"pipeline"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StepConfig defines a single tool invocation within the pipeline.
// Args and Paths may contain template expressions rendered against the
// merged context before execution.
type StepConfig struct {
	Name  string   `yaml:"name"`
	Run   string   `yaml:"run"`
	Args  []string `yaml:"args"`
	Paths []string `yaml:"paths"`
}
