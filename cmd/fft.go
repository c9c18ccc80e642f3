// SPDX-License-Identifier: MIT
package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"onset/internal/analysis"
	"onset/internal/audio"
	"onset/internal/numeric"
	"onset/internal/tui"
)

func (a *app) fftCommand() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "fft <file.wav>",
		Short: "Chart the magnitude spectrum of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := audio.DecodeFile(args[0])
			if err != nil {
				return err
			}

			opts, err := a.cfg.Options()
			if err != nil {
				return err
			}

			var points []tui.Point
			if a.float32Precision() {
				points = spectrumPoints(track.Float32(), opts)
			} else {
				points = spectrumPoints(track.Samples, opts)
			}

			if dump {
				return writePoints(a.out, points)
			}
			title := fmt.Sprintf("%s: %d-point spectrum", track.Name, opts.FrameSize)
			return tui.RunChart(title, points)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Print 'index value' lines instead of opening the chart")

	return cmd
}

func spectrumPoints[T numeric.Float](samples []T, opts analysis.Options) []tui.Point {
	return tui.PointsFrom(analysis.Spectrum(samples, opts))
}

func writePoints(w io.Writer, points []tui.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		fmt.Fprintf(bw, "%d %g\n", p.Index, p.Value)
	}
	return bw.Flush()
}

func (a *app) pcmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pcm <file.wav>",
		Short: "Print the decoded samples of a WAV file as a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := audio.DecodeFile(args[0])
			if err != nil {
				return err
			}

			sink := a.sink("pcm")
			defer sink.Close()
			return sink.Send(track.Samples)
		},
	}
}
