package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	sim "github.com/queueing-sim/queueing-sim/sim"
)

// ScenarioConfig is the YAML layout of a scenarios file: named presets
// mapping directly onto sim.Config fields.
type ScenarioConfig struct {
	Scenarios map[string]sim.Config `yaml:"scenarios"`
}

// LoadScenarios reads and parses a YAML scenarios file.
func LoadScenarios(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios file: %w", err)
	}
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenarios file: %w", err)
	}
	return &cfg, nil
}

// ApplyScenario returns the named preset from the scenarios file at path,
// with explicitly set CLI flags overriding preset values. flagCfg carries
// the current flag values; flags tells which of them the user actually set.
func ApplyScenario(path, name string, flagCfg sim.Config, flags *pflag.FlagSet) (sim.Config, error) {
	cfg, err := LoadScenarios(path)
	if err != nil {
		return sim.Config{}, err
	}
	preset, ok := cfg.Scenarios[name]
	if !ok {
		return sim.Config{}, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	if flags == nil {
		return preset, nil
	}
	if flags.Changed("mean-interarrival") {
		preset.MeanInterarrival = flagCfg.MeanInterarrival
	}
	if flags.Changed("mean-service") {
		preset.MeanService = flagCfg.MeanService
	}
	if flags.Changed("run-length") {
		preset.RunLength = flagCfg.RunLength
	}
	if flags.Changed("seed") {
		preset.Seed = flagCfg.Seed
	}
	if flags.Changed("scale-factor") {
		preset.ScaleFactor = flagCfg.ScaleFactor
	}
	if flags.Changed("discipline") {
		preset.Discipline = flagCfg.Discipline
	}
	return preset, nil
}
