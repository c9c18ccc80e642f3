// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"onset/internal/log"
)

// DefaultConfigFile is searched for in the working directory when no path
// is given.
const DefaultConfigFile = "onset.yaml"

// LoadConfig loads configuration from a YAML file specified by path. If path
// is empty, it looks for DefaultConfigFile and falls back to built-in
// defaults when none exists. Environment overrides are applied after the
// file, then the result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	log.Debugf("configuration: Loaded %s", path)

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies ONSET_* environment variables on top of the
// current values. Unparseable values are ignored with a warning.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("ONSET_LOG_LEVEL"); ok {
		c.LogLevel = val
		log.Debugf("configuration: Overriding log_level from env: %s", val)
	}

	// ONSET_{...} analysis overrides.

	envInt("ONSET_FRAME_SIZE", &c.Analysis.FrameSize)
	envInt("ONSET_WINDOW_RADIUS", &c.Analysis.WindowRadius)
	envInt("ONSET_WORKERS", &c.Analysis.Workers)
	if val, ok := os.LookupEnv("ONSET_MULTIPLIER"); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.Analysis.Multiplier = f
			log.Debugf("configuration: Overriding analysis.multiplier from env: %v", f)
		} else {
			log.Warnf("configuration: Ignoring ONSET_MULTIPLIER=%q: %v", val, err)
		}
	}
	envString("ONSET_WINDOW_POLICY", &c.Analysis.WindowPolicy)
	envString("ONSET_NON_FINITE", &c.Analysis.NonFinite)
	envString("ONSET_BACKEND", &c.Analysis.Backend)
	envString("ONSET_PRECISION", &c.Analysis.Precision)
}

func envInt(name string, dst *int) {
	val, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Warnf("configuration: Ignoring %s=%q: %v", name, val, err)
		return
	}
	*dst = n
	log.Debugf("configuration: Overriding from env %s: %d", name, n)
}

func envString(name string, dst *string) {
	if val, ok := os.LookupEnv(name); ok {
		*dst = val
		log.Debugf("configuration: Overriding from env %s: %s", name, val)
	}
}
