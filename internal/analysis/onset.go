// SPDX-License-Identifier: MIT
package analysis

import (
	"onset/internal/numeric"
	"onset/internal/parallel"
)

// Onsets compares every magnitude against the threshold at the same
// position. The result holds the threshold where the magnitude strictly
// exceeds it and zero everywhere else, so non-zero entries mark candidate
// onset bins. Positions with no matching threshold are zero.
//
// The non-zero value is the local threshold, not the magnitude; use Peaks
// for the magnitudes themselves.
func Onsets[T numeric.Float](magnitudes, thresholds []T, opts Options) []T {
	return compare(magnitudes, thresholds, opts, func(m, th T) T { return th })
}

// Peaks is the companion of Onsets: it keeps the raw magnitude at every
// position where the magnitude strictly exceeds the threshold and zero
// elsewhere.
func Peaks[T numeric.Float](magnitudes, thresholds []T, opts Options) []T {
	return compare(magnitudes, thresholds, opts, func(m, th T) T { return m })
}

func compare[T numeric.Float](magnitudes, thresholds []T, opts Options, keep func(m, th T) T) []T {
	out := make([]T, len(magnitudes))
	specLen := opts.SpectrumLen()

	// One task per frame block keeps task overhead proportional to frames.
	parallel.Map(parallel.Chunks(len(magnitudes), specLen), opts.Workers, func(f int) {
		start := f * specLen
		dst := block(out, f, specLen)
		for b := range dst {
			i := start + b
			if i < len(thresholds) && magnitudes[i] > thresholds[i] {
				dst[b] = keep(magnitudes[i], thresholds[i])
			}
		}
	})

	return out
}
