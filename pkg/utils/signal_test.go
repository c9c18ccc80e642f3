// SPDX-License-Identifier: MIT
package utils

import (
	"math"
	"testing"
)

const (
	testSize       = 1024
	testSampleRate = 44100
	testFrequency  = 440.0 // A4 note
)

func TestGenerateSineWave(t *testing.T) {
	wave := GenerateSineWave(testSize, testSampleRate, testFrequency, 0.5)
	if len(wave) != testSize {
		t.Fatalf("len = %d, expected %d", len(wave), testSize)
	}
	if wave[0] != 0 {
		t.Errorf("wave[0] = %g, expected 0", wave[0])
	}
	for i, v := range wave {
		if math.Abs(v) > 0.5 {
			t.Fatalf("wave[%d] = %g exceeds amplitude 0.5", i, v)
		}
	}
}

func TestGenerateBinTone(t *testing.T) {
	tone := GenerateBinTone(testSize, 8, 1.0)
	// A quarter cycle of bin 8 is testSize/32 samples.
	if got := tone[testSize/32]; math.Abs(got-1.0) > 1e-12 {
		t.Errorf("tone[%d] = %g, expected 1", testSize/32, got)
	}
}

func TestGenerateClickTrack(t *testing.T) {
	track := GenerateClickTrack(testSampleRate, 2.0, 120, 880)
	if len(track) != 2*testSampleRate {
		t.Fatalf("len = %d, expected %d", len(track), 2*testSampleRate)
	}

	// 120 BPM: clicks at 0, 0.5s, 1.0s, 1.5s with silence between.
	interval := testSampleRate / 2
	burst := testSampleRate / 50
	for beat := range 4 {
		start := beat * interval
		peak := FindPeakBin(track, start, start+burst-1)
		if track[peak] <= 0.1 {
			t.Errorf("beat %d: peak %g at sample %d, expected an audible click", beat, track[peak], peak)
		}
		if track[start+interval/2] != 0 {
			t.Errorf("beat %d: expected silence at sample %d", beat, start+interval/2)
		}
	}

	if got := GenerateClickTrack(testSampleRate, 0, 120, 880); len(got) != 0 {
		t.Errorf("zero duration produced %d samples", len(got))
	}
}

func TestFindPeakBin(t *testing.T) {
	magnitudes := make([]float64, testSize)
	for i := range magnitudes {
		// Creates a "hill" with peak at position testSize/4.
		magnitudes[i] = math.Exp(-0.01 * math.Pow(float64(i-testSize/4), 2))
	}

	tests := []struct {
		name       string
		start, end int
		expected   int
	}{
		{"Full Range", 0, testSize - 1, testSize / 4},
		{"Clamped Range", -5, testSize * 2, testSize / 4},
		{"Right Of Peak", testSize / 2, testSize - 1, testSize / 2},
		{"Left Of Peak", 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindPeakBin(magnitudes, tt.start, tt.end); got != tt.expected {
				t.Errorf("FindPeakBin(%d, %d) = %d, expected %d", tt.start, tt.end, got, tt.expected)
			}
		})
	}

	if FindPeakBin(nil, 0, 10) != 0 {
		t.Error("FindPeakBin(nil) should return 0")
	}
}
