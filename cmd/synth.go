// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onset/internal/audio"
	"onset/internal/config"
	"onset/internal/log"
	"onset/pkg/utils"
)

func (a *app) synthCommand() *cobra.Command {
	var synth config.SynthConfig

	cmd := &cobra.Command{
		Use:   "synth <out.wav>",
		Short: "Write a click-track test signal to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.cfg.Synth
			fs := cmd.Flags()
			if fs.Changed("sample-rate") {
				s.SampleRate = synth.SampleRate
			}
			if fs.Changed("bit-depth") {
				s.BitDepth = synth.BitDepth
			}
			if fs.Changed("bpm") {
				s.BPM = synth.BPM
			}
			if fs.Changed("duration") {
				s.Duration = synth.Duration
			}
			if fs.Changed("frequency") {
				s.Frequency = synth.Frequency
			}

			cfg := *a.cfg
			cfg.Synth = s
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			samples := utils.GenerateClickTrack(s.SampleRate, s.Duration, s.BPM, s.Frequency)
			if err := audio.WriteFile(args[0], samples, s.SampleRate, s.BitDepth); err != nil {
				return err
			}

			log.Infof("synth: Wrote %.2fs click track at %.0f BPM to %s", s.Duration, s.BPM, args[0])
			return nil
		},
	}

	cmd.Flags().IntVarP(&synth.SampleRate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate, measured in Hertz (Hz)")
	cmd.Flags().IntVarP(&synth.BitDepth, "bit-depth", "b", config.DefaultBitDepth,
		"Bits per sample: 16, 24 or 32")
	cmd.Flags().Float64Var(&synth.BPM, "bpm", config.DefaultBPM, "Clicks per minute")
	cmd.Flags().Float64VarP(&synth.Duration, "duration", "d", config.DefaultDuration, "Length in seconds")
	cmd.Flags().Float64Var(&synth.Frequency, "frequency", config.DefaultFrequency, "Click tone frequency (Hz)")

	return cmd
}
