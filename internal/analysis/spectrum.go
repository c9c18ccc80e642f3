// SPDX-License-Identifier: MIT
package analysis

import (
	"sync"

	"onset/internal/numeric"
	"onset/internal/parallel"
)

// frameWorkspace holds the buffers owned by one in-flight frame task.
type frameWorkspace struct {
	fft    Transformer
	input  []complex128 // Frame samples as complex values, zero-padded.
	output []complex128 // Full transform output.
}

// newWorkspacePool pre-allocates workspaces on demand so each task reuses a
// plan and its buffers instead of building them per frame.
func newWorkspacePool(opts Options) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			return &frameWorkspace{
				fft:    NewTransformer(opts.Backend, opts.FrameSize),
				input:  make([]complex128, opts.FrameSize),
				output: make([]complex128, opts.FrameSize),
			}
		},
	}
}

// Spectrum splits samples into frames of opts.FrameSize and returns the
// concatenated magnitude spectra, F/2+1 bins per frame, in frame order. The
// last frame is zero-padded when short. Empty input yields empty output.
func Spectrum[T numeric.Float](samples []T, opts Options) []T {
	mags, _ := spectrum(samples, opts)
	return mags
}

// spectrum is Spectrum that also reports how many non-finite magnitudes
// were replaced under NonFiniteZero.
func spectrum[T numeric.Float](samples []T, opts Options) ([]T, int) {
	if len(samples) == 0 {
		return []T{}, 0
	}

	frameSize := opts.FrameSize
	specLen := opts.SpectrumLen()
	frames := parallel.Chunks(len(samples), frameSize)
	out := make([]T, frames*specLen)
	pool := newWorkspacePool(opts)

	parallel.Map(frames, opts.Workers, func(i int) {
		ws := pool.Get().(*frameWorkspace)
		defer pool.Put(ws)

		start := i * frameSize
		end := min(start+frameSize, len(samples))
		frame := samples[start:end]
		for j := range ws.input {
			if j < len(frame) {
				ws.input[j] = numeric.ToComplex(frame[j])
			} else {
				ws.input[j] = 0 // Zero-padding.
			}
		}

		ws.output = ws.fft.Coefficients(ws.output, ws.input)

		// Only bins 0..F/2 are kept, the rest mirror them for real input.
		dst := out[i*specLen : (i+1)*specLen]
		for b := range dst {
			dst[b] = numeric.Magnitude[T](ws.output[b])
		}
	})

	replaced := 0
	if opts.NonFinite == NonFiniteZero {
		replaced = zeroNonFinite(out)
	}
	return out, replaced
}

// zeroNonFinite replaces NaN and infinite values in xs with zero and
// returns how many were replaced.
func zeroNonFinite[T numeric.Float](xs []T) int {
	replaced := 0
	for i, x := range xs {
		if !numeric.IsFinite(x) {
			xs[i] = 0
			replaced++
		}
	}
	return replaced
}
