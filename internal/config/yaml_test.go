// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"onset/internal/analysis"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "onset.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Analysis.FrameSize != analysis.DefaultFrameSize {
		t.Errorf("FrameSize = %d, expected %d", cfg.Analysis.FrameSize, analysis.DefaultFrameSize)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig("nonexistent.yaml")
	if err == nil {
		t.Errorf("expected error for missing file, got nil")
	}
	if cfg != nil {
		t.Errorf("expected nil config on error, got %+v", cfg)
	}
}

func TestLoadConfig_UnmarshalError(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, ":\n:bad")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Error("expected unmarshal error, got nil or wrong error")
	}
}

func TestLoadConfig_FileValues(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, `
log_level: debug
analysis:
  frame_size: 2048
  window_radius: 4
  multiplier: 2.0
  window_policy: legacy
  backend: godsp
  precision: float32
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	expected := analysis.Options{
		FrameSize:    2048,
		WindowRadius: 4,
		Multiplier:   2.0,
		WindowPolicy: analysis.WindowLegacy,
		NonFinite:    analysis.NonFiniteZero,
		Backend:      analysis.BackendGoDSP,
	}
	if opts != expected {
		t.Errorf("Options() = %+v, expected %+v", opts, expected)
	}
	if cfg.Analysis.Precision != "float32" {
		t.Errorf("Precision = %q, expected float32", cfg.Analysis.Precision)
	}
	// Unset sections keep their defaults.
	if cfg.Synth.SampleRate != DefaultSampleRate {
		t.Errorf("Synth.SampleRate = %d, expected %d", cfg.Synth.SampleRate, DefaultSampleRate)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"FrameSizeNotPow2", "analysis:\n  frame_size: 1000\n", "power of 2"},
		{"NegativeRadius", "analysis:\n  window_radius: -1\n", "window radius"},
		{"ZeroMultiplier", "analysis:\n  multiplier: 0\n", "multiplier"},
		{"UnknownPolicy", "analysis:\n  window_policy: global\n", "window policy"},
		{"UnknownBackend", "analysis:\n  backend: fftw\n", "backend"},
		{"UnknownPrecision", "analysis:\n  precision: float16\n", "precision"},
		{"UnknownLogLevel", "log_level: chatty\n", "log_level"},
		{"BadBitDepth", "synth:\n  bit_depth: 12\n", "bit_depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeTempConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, expected it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ONSET_FRAME_SIZE", "512")
	t.Setenv("ONSET_WINDOW_POLICY", "legacy")
	t.Setenv("ONSET_MULTIPLIER", "not-a-number")

	cfg, err := LoadConfig(writeTempConfig(t, "analysis:\n  frame_size: 4096\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Analysis.FrameSize != 512 {
		t.Errorf("FrameSize = %d, expected env override 512", cfg.Analysis.FrameSize)
	}
	if cfg.Analysis.WindowPolicy != "legacy" {
		t.Errorf("WindowPolicy = %q, expected env override legacy", cfg.Analysis.WindowPolicy)
	}
	if cfg.Analysis.Multiplier != analysis.DefaultMultiplier {
		t.Errorf("Multiplier = %v, expected unparseable env value to be ignored", cfg.Analysis.Multiplier)
	}
}
