// SPDX-License-Identifier: MIT
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"onset/internal/numeric"
)

// Event summarises one frame that contains at least one onset bin.
type Event struct {
	Frame         int     `json:"frame"`          // Frame index.
	Time          float64 `json:"time"`           // Frame start in seconds.
	Bins          int     `json:"bins"`           // Number of bins above threshold.
	Threshold     float64 `json:"threshold"`      // Adaptive threshold of the frame.
	Flux          float64 `json:"flux"`           // Spectral flux of the frame.
	PeakBin       int     `json:"peak_bin"`       // Strongest bin above threshold.
	PeakFrequency float64 `json:"peak_frequency"` // Centre frequency of PeakBin (Hz).
	PeakMagnitude float64 `json:"peak_magnitude"` // Magnitude at PeakBin.
}

// Events lists the frames of r that contain onset bins, in frame order.
func Events[T numeric.Float](r *Result[T], sampleRate float64) []Event {
	if r == nil || r.Frames == 0 {
		return nil
	}

	specLen := r.Options.SpectrumLen()
	peaks := make([]float64, specLen)

	var events []Event
	for f := range r.Frames {
		frameP := block(r.Peaks, f, specLen)

		bins := 0
		peaks = peaks[:len(frameP)]
		for b := range frameP {
			peaks[b] = float64(frameP[b])
			if r.Magnitudes[f*specLen+b] > r.Thresholds[f*specLen+b] {
				bins++
			}
		}
		if bins == 0 {
			continue
		}

		peakBin := floats.MaxIdx(peaks)
		events = append(events, Event{
			Frame:         f,
			Time:          float64(f*r.Options.FrameSize) / sampleRate,
			Bins:          bins,
			Threshold:     float64(r.Thresholds[f*specLen]),
			Flux:          float64(r.Flux[f]),
			PeakBin:       peakBin,
			PeakFrequency: BinFrequency(peakBin, r.Options.FrameSize, sampleRate),
			PeakMagnitude: peaks[peakBin],
		})
	}

	return events
}

// FluxStats returns the mean and standard deviation of the flux sequence.
// Fewer than two frames yield a zero deviation.
func FluxStats[T numeric.Float](r *Result[T]) (mean, stddev float64) {
	if r == nil || len(r.Flux) == 0 {
		return 0, 0
	}
	flux := make([]float64, len(r.Flux))
	for i, v := range r.Flux {
		flux[i] = float64(v)
	}
	if len(flux) < 2 {
		return flux[0], 0
	}
	mean, stddev = stat.MeanStdDev(flux, nil)
	if math.IsNaN(stddev) {
		stddev = 0
	}
	return mean, stddev
}
