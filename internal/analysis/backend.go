// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"strings"

	godsp "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend selects the complex transform implementation.
type Backend int

const (
	BackendGonum Backend = iota // gonum.org/v1/gonum/dsp/fourier
	BackendGoDSP                // github.com/mjibson/go-dsp/fft
)

func (b Backend) String() string {
	switch b {
	case BackendGonum:
		return "gonum"
	case BackendGoDSP:
		return "godsp"
	default:
		return "unknown"
	}
}

// ParseBackend converts a name (case-insensitive) to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "gonum", "":
		return BackendGonum, nil
	case "godsp", "go-dsp":
		return BackendGoDSP, nil
	default:
		return BackendGonum, fmt.Errorf("unknown transform backend: '%s'", name)
	}
}

// Transformer computes the forward, unnormalized complex DFT of a fixed
// size. Implementations may keep scratch state and are not safe for
// concurrent use; each task owns its own.
type Transformer interface {
	// Coefficients writes the transform of src into dst and returns it.
	// dst and src must both have length Len().
	Coefficients(dst, src []complex128) []complex128
	Len() int
}

// NewTransformer returns a Transformer of size n for the given backend.
func NewTransformer(b Backend, n int) Transformer {
	switch b {
	case BackendGoDSP:
		return &godspTransformer{n: n}
	default:
		return fourier.NewCmplxFFT(n)
	}
}

// godspTransformer adapts go-dsp's allocating FFT to the Transformer shape.
type godspTransformer struct {
	n int
}

func (t *godspTransformer) Coefficients(dst, src []complex128) []complex128 {
	if dst == nil {
		dst = make([]complex128, t.n)
	}
	copy(dst, godsp.FFT(src))
	return dst
}

func (t *godspTransformer) Len() int {
	return t.n
}

// BinFrequency returns the centre frequency (Hz) of a spectrum bin.
// Out-of-range bins return 0.
func BinFrequency(bin, frameSize int, sampleRate float64) float64 {
	if bin < 0 || bin > frameSize/2 || frameSize <= 0 {
		return 0.0
	}
	// Frequency resolution = sampleRate / frameSize
	return float64(bin) * (sampleRate / float64(frameSize))
}
