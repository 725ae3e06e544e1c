package app

import "flag"

// Config represents the command-line parameters for the GUI application.
type Config struct {
	Scenario string
	Scale    int
	FPS      float64
	Seed     int64
}

// NewConfig returns a Config populated with sensible defaults. FPS 0 defers
// to the scenario's pacing target.
func NewConfig() *Config {
	return &Config{Scenario: "scenario.yaml", Scale: 3, FPS: 0, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario file to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Float64Var(&c.FPS, "fps", c.FPS, "frame pacing target")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed overriding the scenario")
}
