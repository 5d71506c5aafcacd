// Package config loads the analyzer's tunable thresholds: a YAML file
// on disk, overlaid by environment variables, following the layered
// approach the example configs in this codebase's ecosystem use.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Thresholds mirrors the constants analyzer.h hardcodes, made
// overridable so the CLI can tune classification without a rebuild.
type Thresholds struct {
	TimerMinutes int     `yaml:"timerMinutes" env:"SLIPPC_TIMER_MINUTES"`
	SharkFrames  int     `yaml:"sharkFrames" env:"SLIPPC_SHARK_FRAMES"`
	PokeFrames   int     `yaml:"pokeFrames" env:"SLIPPC_POKE_FRAMES"`
	FootsieDist  float64 `yaml:"footsieDistance" env:"SLIPPC_FOOTSIE_DISTANCE"`
}

// LogLevel and Config round out the ambient CLI configuration.
type Config struct {
	LogLevel   string     `yaml:"logLevel" env:"SLIPPC_LOG_LEVEL"`
	Thresholds Thresholds `yaml:"thresholds"`
}

// Default returns the same threshold values analyzer.h hardcodes, so
// running with no config file at all reproduces the original
// behavior exactly.
func Default() Config {
	return Config{
		LogLevel: "info",
		Thresholds: Thresholds{
			TimerMinutes: 8,
			SharkFrames:  15,
			PokeFrames:   30,
			FootsieDist:  10.0,
		},
	}
}

// Load reads path (if non-empty) as YAML over the defaults, then
// overlays any set environment variables. An empty path skips the
// file; a file that cannot be read or parsed is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	return cfg, nil
}
