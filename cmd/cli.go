// SPDX-License-Identifier: MIT
//
// Package cmd implements the onset command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"onset/internal/config"
	"onset/internal/log"
	"onset/internal/transport"
	"onset/pkg/build"
)

// flags holds persistent flag values. They override the configuration file
// only when set explicitly.
type flags struct {
	configPath   string
	frameSize    int
	radius       int
	multiplier   float64
	windowPolicy string
	workers      int
	precision    string
	backend      string
	verbose      bool
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	out   io.Writer
	flags flags
	cfg   *config.Config
}

// NewRootCommand builds the onset command tree. Command output is written
// to out; logs go to the logger's output.
func NewRootCommand(out io.Writer) *cobra.Command {
	buildInfo := build.GetBuildFlags()
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}
	rootCmd.SetOut(out)

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Configuration
	rootCmd.PersistentFlags().StringVar(&a.flags.configPath, "config", "",
		"Path to a YAML configuration file (default ./"+config.DefaultConfigFile+" if present)")

	// Analysis
	rootCmd.PersistentFlags().IntVarP(&a.flags.frameSize, "frame-size", "f", 0,
		"Samples per analysis frame, a power of two (default 1024)")
	rootCmd.PersistentFlags().IntVarP(&a.flags.radius, "radius", "r", 0,
		"Threshold window radius in frames (default 10)")
	rootCmd.PersistentFlags().Float64VarP(&a.flags.multiplier, "multiplier", "m", 0,
		"Threshold multiplier applied to the windowed mean flux (default 1.5)")
	rootCmd.PersistentFlags().StringVar(&a.flags.windowPolicy, "window-policy", "",
		"Threshold window bounds: local or legacy (default local)")
	rootCmd.PersistentFlags().IntVarP(&a.flags.workers, "workers", "w", 0,
		"Parallel workers, 0 for one per CPU")
	rootCmd.PersistentFlags().StringVarP(&a.flags.precision, "precision", "p", "",
		"Pipeline precision: float32 or float64 (default float64)")
	rootCmd.PersistentFlags().StringVar(&a.flags.backend, "backend", "",
		"FFT backend: gonum or godsp (default gonum)")

	// Debug Configuration
	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.AddCommand(
		a.detectCommand(),
		a.fftCommand(),
		a.pcmCommand(),
		a.synthCommand(),
	)

	return rootCmd
}

// Execute runs the CLI against the process arguments.
func Execute() error {
	rootCmd := NewRootCommand(os.Stdout)
	rootCmd.SetArgs(os.Args[1:])
	return rootCmd.Execute()
}

// loadConfig reads the configuration file, applies explicitly set flags on
// top and configures the log level.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.flags.configPath)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("frame-size") {
		cfg.Analysis.FrameSize = a.flags.frameSize
	}
	if fs.Changed("radius") {
		cfg.Analysis.WindowRadius = a.flags.radius
	}
	if fs.Changed("multiplier") {
		cfg.Analysis.Multiplier = a.flags.multiplier
	}
	if fs.Changed("window-policy") {
		cfg.Analysis.WindowPolicy = a.flags.windowPolicy
	}
	if fs.Changed("workers") {
		cfg.Analysis.Workers = a.flags.workers
	}
	if fs.Changed("precision") {
		cfg.Analysis.Precision = a.flags.precision
	}
	if fs.Changed("backend") {
		cfg.Analysis.Backend = a.flags.backend
	}
	if a.flags.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	a.cfg = cfg
	return nil
}

func (a *app) float32Precision() bool {
	return strings.EqualFold(a.cfg.Analysis.Precision, "float32")
}

// sink returns the transport used for machine-readable command output.
func (a *app) sink(name string) transport.Transport {
	return transport.Multi{
		transport.NewJSONTransport(a.out),
		transport.NewLoggingTransport(name),
	}
}
