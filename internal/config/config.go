// Package config loads the optional YAML tuning file accepted by the
// `jsi run --config` flag: garbage-collector thresholds and the
// Math.random seed.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// GCConfig tunes the mark-and-sweep collector.
type GCConfig struct {
	// ThresholdBytes is the heap size, in bytes, that triggers the first
	// collection. Zero means "use the collector's built-in default".
	ThresholdBytes int64 `yaml:"thresholdBytes"`
	// GrowthFactor multiplies the bytes still live after each collection
	// to give the next threshold. Zero means "use the collector's
	// built-in default".
	GrowthFactor float64 `yaml:"growthFactor"`
}

// Config is the top-level shape of a jsi config YAML file.
type Config struct {
	GC GCConfig `yaml:"gc"`
	// RandomSeed seeds Math.random's PRNG for reproducible runs. Zero
	// means "seed from the clock" (the interpreter itself, not this
	// package, picks that seed).
	RandomSeed int64 `yaml:"randomSeed"`
}

// Default returns the zero-value configuration, equivalent to no
// --config flag being passed.
func Default() *Config {
	return &Config{}
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
