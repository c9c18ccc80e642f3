// SPDX-License-Identifier: MIT
/*
Package analysis implements spectral-flux onset detection over a complete,
already-decoded mono sample sequence.

The pipeline has three stages, each a pure function returning a new
sequence:

	samples -> Spectrum -> magnitudes (F/2+1 bins per frame)
	magnitudes -> Novelty -> thresholds (one value per frame, repeated per bin)
	magnitudes, thresholds -> Onsets -> threshold where exceeded, else 0

Frames are distributed across workers, but every value is computed by a
single task in index order, so repeated runs are bit-identical regardless
of worker count.
*/
package analysis

import (
	"time"

	"onset/internal/log"
	"onset/internal/numeric"
)

// Result carries every intermediate sequence of one pipeline run.
type Result[T numeric.Float] struct {
	Options    Options
	Frames     int // Number of frames analysed.
	Magnitudes []T // Spectrum output.
	Flux       []T // One flux value per frame.
	Thresholds []T // Novelty output.
	Onsets     []T // Onsets output.
	Peaks      []T // Magnitudes at onset positions.
	NonFinite  int // Values replaced under NonFiniteZero.
}

// Detector runs the full pipeline with a fixed, validated configuration.
// It holds no state between runs and is safe for concurrent use.
type Detector[T numeric.Float] struct {
	opts Options
}

// NewDetector validates opts and returns a Detector for precision T.
func NewDetector[T numeric.Float](opts Options) (*Detector[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log.Debugf("Analysis: Initializing Detector (Frame: %d, Radius: %d, Multiplier: %.2f, Window: %s, Backend: %s)",
		opts.FrameSize, opts.WindowRadius, opts.Multiplier, opts.WindowPolicy, opts.Backend)

	return &Detector[T]{opts: opts}, nil
}

// Options returns the detector's configuration.
func (d *Detector[T]) Options() Options {
	return d.opts
}

// Run executes Spectrum, Novelty and Onsets over samples.
func (d *Detector[T]) Run(samples []T) *Result[T] {
	opts := d.opts

	began := time.Now()
	mags, badMags := spectrum(samples, opts)
	log.Debugf("Analysis: Spectrum of %d samples -> %d bins in %s", len(samples), len(mags), time.Since(began))

	began = time.Now()
	flux, badFlux := spectralFlux(mags, opts)
	th := thresholds(len(mags), flux, opts)
	log.Debugf("Analysis: Novelty over %d frames in %s", len(flux), time.Since(began))

	began = time.Now()
	onsets := Onsets(mags, th, opts)
	peaks := Peaks(mags, th, opts)
	log.Debugf("Analysis: Onsets in %s", time.Since(began))

	if bad := badMags + badFlux; bad > 0 {
		log.Warnf("Analysis: Replaced %d non-finite values with zero", bad)
	}

	return &Result[T]{
		Options:    opts,
		Frames:     len(flux),
		Magnitudes: mags,
		Flux:       flux,
		Thresholds: th,
		Onsets:     onsets,
		Peaks:      peaks,
		NonFinite:  badMags + badFlux,
	}
}
