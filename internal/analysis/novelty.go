// SPDX-License-Identifier: MIT
package analysis

import (
	"onset/internal/numeric"
	"onset/internal/parallel"
)

// Flux returns the half-wave-rectified spectral difference of every frame
// in a flattened magnitude sequence: the sum over bins of
// max(0, current - previous). The first frame has no predecessor and its
// flux is zero.
func Flux[T numeric.Float](magnitudes []T, opts Options) []T {
	flux, _ := spectralFlux(magnitudes, opts)
	return flux
}

func spectralFlux[T numeric.Float](magnitudes []T, opts Options) ([]T, int) {
	specLen := opts.SpectrumLen()
	frames := parallel.Chunks(len(magnitudes), specLen)
	flux := make([]T, frames)

	for f := 1; f < frames; f++ {
		prev := block(magnitudes, f-1, specLen)
		cur := block(magnitudes, f, specLen)

		var sum T
		for b := range min(len(prev), len(cur)) {
			if diff := cur[b] - prev[b]; diff > 0 {
				sum += diff
			}
		}
		flux[f] = sum
	}

	replaced := 0
	if opts.NonFinite == NonFiniteZero {
		replaced = zeroNonFinite(flux)
	}
	return flux, replaced
}

// Novelty converts a flattened magnitude sequence into the adaptive
// threshold sequence. The result has the same length as magnitudes; every
// frame's block holds that frame's threshold, repeated.
func Novelty[T numeric.Float](magnitudes []T, opts Options) []T {
	flux, _ := spectralFlux(magnitudes, opts)
	return thresholds(len(magnitudes), flux, opts)
}

// thresholds expands one threshold per flux value into blocks matching the
// frame layout of a magnitude sequence of length n.
func thresholds[T numeric.Float](n int, flux []T, opts Options) []T {
	specLen := opts.SpectrumLen()
	out := make([]T, n)
	multiplier := numeric.FromFloat64[T](opts.Multiplier)

	parallel.Map(len(flux), opts.Workers, func(i int) {
		threshold := windowMean(flux, i, opts.WindowRadius, opts.WindowPolicy) * multiplier

		dst := block(out, i, specLen)
		for b := range dst {
			dst[b] = threshold
		}
	})

	return out
}

// windowMean averages flux around index i. An empty window yields zero.
// Summation always runs in index order so the result does not depend on
// scheduling.
func windowMean[T numeric.Float](flux []T, i, radius int, policy WindowPolicy) T {
	n := len(flux)
	start := max(0, i-radius)

	var end, count int
	switch policy {
	case WindowLegacy:
		end = max(n-1, i+radius) // Exclusive, may run past the sequence.
		count = end - start
	default:
		end = min(n-1, i+radius) + 1
		count = end - start
	}
	if count <= 0 {
		return 0
	}

	var sum T
	for j := start; j < min(end, n); j++ {
		sum += flux[j]
	}
	return sum / numeric.FromInt[T](count)
}

// block returns the i-th specLen-wide block of xs, truncated at the end of xs.
func block[T any](xs []T, i, specLen int) []T {
	start := i * specLen
	end := min(start+specLen, len(xs))
	return xs[start:end]
}
