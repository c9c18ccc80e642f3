// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"strings"

	"onset/internal/analysis"
	"onset/internal/log"
)

// Defaults for the parts of the configuration not owned by the analysis
// package.
const (
	DefaultLogLevel   = "info"
	DefaultPrecision  = "float64" // Pipeline precision ("float32" or "float64").
	DefaultSampleRate = 44100     // Synthesizer output rate (Hz).
	DefaultBitDepth   = 16        // Synthesizer output bit depth.
	DefaultBPM        = 120.0     // Synthesizer click rate.
	DefaultDuration   = 10.0      // Synthesizer length (seconds).
	DefaultFrequency  = 880.0     // Synthesizer click tone (Hz).

	MinSampleRate = 8000   // Minimum usable sample rate (Hz)
	MaxSampleRate = 192000 // Maximum supported sample rate (Hz)
)

// Config represents the application configuration, loaded from YAML.
type Config struct {
	LogLevel string         `yaml:"log_level"` // Logging level (e.g., "debug", "info", "warn", "error").
	Analysis AnalysisConfig `yaml:"analysis"`  // Onset detection pipeline settings.
	Synth    SynthConfig    `yaml:"synth"`     // Test signal generator settings.
}

// AnalysisConfig mirrors analysis.Options with textual enums.
type AnalysisConfig struct {
	FrameSize    int     `yaml:"frame_size"`    // Samples per frame, power of 2.
	WindowRadius int     `yaml:"window_radius"` // Threshold window radius in frames.
	Multiplier   float64 `yaml:"multiplier"`    // Threshold multiplier.
	WindowPolicy string  `yaml:"window_policy"` // "local" or "legacy".
	NonFinite    string  `yaml:"non_finite"`    // "zero" or "propagate".
	Backend      string  `yaml:"backend"`       // "gonum" or "godsp".
	Workers      int     `yaml:"workers"`       // Parallel workers, 0 for GOMAXPROCS.
	Precision    string  `yaml:"precision"`     // "float32" or "float64".
}

// SynthConfig holds settings for the click-track generator.
type SynthConfig struct {
	SampleRate int     `yaml:"sample_rate"` // Output sample rate (Hz).
	BitDepth   int     `yaml:"bit_depth"`   // Output bit depth (16, 24 or 32).
	BPM        float64 `yaml:"bpm"`         // Clicks per minute.
	Duration   float64 `yaml:"duration"`    // Length in seconds.
	Frequency  float64 `yaml:"frequency"`   // Click tone frequency (Hz).
}

// NewConfig returns a Config holding the built-in defaults.
func NewConfig() *Config {
	defaults := analysis.DefaultOptions()
	return &Config{
		LogLevel: DefaultLogLevel,
		Analysis: AnalysisConfig{
			FrameSize:    defaults.FrameSize,
			WindowRadius: defaults.WindowRadius,
			Multiplier:   defaults.Multiplier,
			WindowPolicy: defaults.WindowPolicy.String(),
			NonFinite:    defaults.NonFinite.String(),
			Backend:      defaults.Backend.String(),
			Workers:      defaults.Workers,
			Precision:    DefaultPrecision,
		},
		Synth: SynthConfig{
			SampleRate: DefaultSampleRate,
			BitDepth:   DefaultBitDepth,
			BPM:        DefaultBPM,
			Duration:   DefaultDuration,
			Frequency:  DefaultFrequency,
		},
	}
}

// Options converts the analysis section into analysis.Options.
func (c *Config) Options() (analysis.Options, error) {
	policy, err := analysis.ParseWindowPolicy(c.Analysis.WindowPolicy)
	if err != nil {
		return analysis.Options{}, err
	}
	nonFinite, err := analysis.ParseNonFinitePolicy(c.Analysis.NonFinite)
	if err != nil {
		return analysis.Options{}, err
	}
	backend, err := analysis.ParseBackend(c.Analysis.Backend)
	if err != nil {
		return analysis.Options{}, err
	}

	return analysis.Options{
		FrameSize:    c.Analysis.FrameSize,
		WindowRadius: c.Analysis.WindowRadius,
		Multiplier:   c.Analysis.Multiplier,
		WindowPolicy: policy,
		NonFinite:    nonFinite,
		Backend:      backend,
		Workers:      c.Analysis.Workers,
	}, nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level '%s'", c.LogLevel)
	}

	opts, err := c.Options()
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	switch strings.ToLower(c.Analysis.Precision) {
	case "float32", "float64":
	default:
		return fmt.Errorf("analysis.precision must be float32 or float64, got '%s'", c.Analysis.Precision)
	}

	if c.Synth.SampleRate < MinSampleRate || c.Synth.SampleRate > MaxSampleRate {
		return fmt.Errorf("synth.sample_rate must be within [%d, %d], got %d",
			MinSampleRate, MaxSampleRate, c.Synth.SampleRate)
	}
	switch c.Synth.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("synth.bit_depth must be 16, 24 or 32, got %d", c.Synth.BitDepth)
	}
	if c.Synth.BPM <= 0 || c.Synth.Duration <= 0 || c.Synth.Frequency <= 0 {
		return fmt.Errorf("synth.bpm, synth.duration and synth.frequency must be positive")
	}

	return nil
}
