// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"onset/internal/analysis"
	"onset/internal/audio"
	"onset/internal/numeric"
)

// Report is the outcome of the detect command.
type Report struct {
	File       string           `json:"file"`
	SampleRate int              `json:"sample_rate"`
	Duration   float64          `json:"duration"` // Seconds.
	Precision  string           `json:"precision"`
	Frames     int              `json:"frames"`
	NonFinite  int              `json:"non_finite"`
	FluxMean   float64          `json:"flux_mean"`
	FluxStdDev float64          `json:"flux_stddev"`
	Events     []analysis.Event `json:"events"`
}

func (a *app) detectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect <file.wav>",
		Short: "Detect onsets (beats) in a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := audio.DecodeFile(args[0])
			if err != nil {
				return err
			}

			report, err := a.detect(track)
			if err != nil {
				return err
			}

			if asJSON {
				sink := a.sink("detect")
				defer sink.Close()
				return sink.Send(report)
			}
			return writeReport(a.out, report)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

// detect runs the pipeline over track at the configured precision.
func (a *app) detect(track *audio.Track) (*Report, error) {
	opts, err := a.cfg.Options()
	if err != nil {
		return nil, err
	}

	report := &Report{
		File:       track.Name,
		SampleRate: track.SampleRate,
		Duration:   track.Duration().Seconds(),
		Precision:  "float64",
	}
	if a.float32Precision() {
		report.Precision = "float32"
		err = analyse(report, opts, track.Float32())
	} else {
		err = analyse(report, opts, track.Samples)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func analyse[T numeric.Float](report *Report, opts analysis.Options, samples []T) error {
	detector, err := analysis.NewDetector[T](opts)
	if err != nil {
		return err
	}

	result := detector.Run(samples)
	report.Frames = result.Frames
	report.NonFinite = result.NonFinite
	report.FluxMean, report.FluxStdDev = analysis.FluxStats(result)
	report.Events = analysis.Events(result, float64(report.SampleRate))
	if report.Events == nil {
		report.Events = []analysis.Event{}
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// writeReport prints a summary line followed by a table of events.
func writeReport(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "%s: %.2fs at %d Hz, %d frames, %d onset frames (flux mean %.4g, sd %.4g)\n",
		r.File, r.Duration, r.SampleRate, r.Frames, len(r.Events), r.FluxMean, r.FluxStdDev)
	if r.NonFinite > 0 {
		fmt.Fprintf(w, "%d non-finite values replaced\n", r.NonFinite)
	}
	if len(r.Events) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(r.Events))
	for _, e := range r.Events {
		rows = append(rows, []string{
			strconv.Itoa(e.Frame),
			strconv.FormatFloat(e.Time, 'f', 3, 64),
			strconv.Itoa(e.Bins),
			strconv.FormatFloat(e.Threshold, 'g', 5, 64),
			strconv.FormatFloat(e.Flux, 'g', 5, 64),
			strconv.FormatFloat(e.PeakFrequency, 'f', 1, 64),
			strconv.FormatFloat(e.PeakMagnitude, 'g', 5, 64),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Frame", "Time (s)", "Bins", "Threshold", "Flux", "Peak (Hz)", "Magnitude").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}
