// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"strings"

	"onset/pkg/bitint"
)

// Canonical pipeline constants.
const (
	DefaultFrameSize    = 1024 // Samples per non-overlapping frame.
	DefaultWindowRadius = 10   // Frames either side of the current frame in the threshold window.
	DefaultMultiplier   = 1.5  // Scale applied to the windowed mean flux.
)

// WindowPolicy selects how the adaptive threshold window is bounded.
type WindowPolicy int

const (
	// WindowLocal averages flux over [i-R, i+R] clamped to the sequence.
	WindowLocal WindowPolicy = iota
	// WindowLegacy reproduces the historical bound: the window end is
	// max(last, i+R), exclusive, and the divisor counts positions past the
	// end of the sequence. For most frames this stretches the window to the
	// end of the track.
	WindowLegacy
)

func (p WindowPolicy) String() string {
	switch p {
	case WindowLocal:
		return "local"
	case WindowLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseWindowPolicy converts a name (case-insensitive) to a WindowPolicy.
// Returns WindowLocal and an error if the name is unknown.
func ParseWindowPolicy(name string) (WindowPolicy, error) {
	switch strings.ToLower(name) {
	case "local", "":
		return WindowLocal, nil
	case "legacy":
		return WindowLegacy, nil
	default:
		return WindowLocal, fmt.Errorf("unknown window policy: '%s'", name)
	}
}

// NonFinitePolicy selects what happens to NaN and infinite values produced
// by malformed input.
type NonFinitePolicy int

const (
	// NonFiniteZero replaces non-finite magnitudes and flux values with zero
	// and counts the replacements.
	NonFiniteZero NonFinitePolicy = iota
	// NonFinitePropagate leaves non-finite values untouched.
	NonFinitePropagate
)

func (p NonFinitePolicy) String() string {
	switch p {
	case NonFiniteZero:
		return "zero"
	case NonFinitePropagate:
		return "propagate"
	default:
		return "unknown"
	}
}

// ParseNonFinitePolicy converts a name (case-insensitive) to a NonFinitePolicy.
func ParseNonFinitePolicy(name string) (NonFinitePolicy, error) {
	switch strings.ToLower(name) {
	case "zero", "":
		return NonFiniteZero, nil
	case "propagate":
		return NonFinitePropagate, nil
	default:
		return NonFiniteZero, fmt.Errorf("unknown non-finite policy: '%s'", name)
	}
}

// Options configures every stage of the pipeline. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	FrameSize    int             // Samples per frame (F). Must be a power of 2.
	WindowRadius int             // Threshold window radius in frames (R).
	Multiplier   float64         // Threshold multiplier.
	WindowPolicy WindowPolicy    // Threshold window bound policy.
	NonFinite    NonFinitePolicy // Handling of NaN/Inf values.
	Backend      Backend         // Complex transform implementation.
	Workers      int             // Parallel workers, <= 0 for GOMAXPROCS.
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		FrameSize:    DefaultFrameSize,
		WindowRadius: DefaultWindowRadius,
		Multiplier:   DefaultMultiplier,
		WindowPolicy: WindowLocal,
		NonFinite:    NonFiniteZero,
		Backend:      BackendGonum,
	}
}

// SpectrumLen is the number of retained bins per frame, F/2 + 1.
func (o Options) SpectrumLen() int {
	return o.FrameSize/2 + 1
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if !bitint.IsPowerOfTwo(o.FrameSize) || o.FrameSize < 2 {
		return fmt.Errorf("frame size must be a power of 2 >= 2, got %d (nearest: %d)",
			o.FrameSize, bitint.NextPowerOfTwo(o.FrameSize))
	}
	if o.WindowRadius < 0 {
		return fmt.Errorf("window radius must be >= 0, got %d", o.WindowRadius)
	}
	if o.Multiplier <= 0 {
		return fmt.Errorf("multiplier must be positive, got %f", o.Multiplier)
	}
	if o.WindowPolicy.String() == "unknown" {
		return fmt.Errorf("unknown window policy %d", o.WindowPolicy)
	}
	if o.NonFinite.String() == "unknown" {
		return fmt.Errorf("unknown non-finite policy %d", o.NonFinite)
	}
	if o.Backend.String() == "unknown" {
		return fmt.Errorf("unknown transform backend %d", o.Backend)
	}
	return nil
}
