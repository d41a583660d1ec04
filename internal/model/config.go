package model

// Mode selects how much of the row set is written out.
const (
	ModeFull    = "full"    // write every surviving row
	ModeCompact = "compact" // additionally drop rows with zero AI count
)

// Config holds the complete lexbuild configuration
type Config struct {
	InputRoot string `yaml:"input_root" mapstructure:"input_root"` // Root of the experiment outputs
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"` // Where the dashboard reads from

	// Guardrail: words must appear at least this many times in AI text
	// to be considered for the high-impact ranking.
	MinAICountForImpact int `yaml:"min_ai_count_for_impact" mapstructure:"min_ai_count_for_impact"`

	// Jeffreys smoothing constant for ratio = (c_M+s)/(c_H+s).
	RatioSmooth float64 `yaml:"ratio_smooth" mapstructure:"ratio_smooth"`

	Mode     string `yaml:"mode" mapstructure:"mode"`         // full or compact
	Distinct bool   `yaml:"distinct" mapstructure:"distinct"` // compute KL distinctiveness when columns exist

	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig controls console reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		InputRoot:           "csv_files",
		OutputDir:           "data",
		MinAICountForImpact: 20,
		RatioSmooth:         0.5,
		Mode:                ModeFull,
		Distinct:            true,
	}
}

// Valid reports whether the mode value is one lexbuild understands.
func (c *Config) Valid() bool {
	return c.Mode == ModeFull || c.Mode == ModeCompact
}
