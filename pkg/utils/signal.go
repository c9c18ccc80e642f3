// SPDX-License-Identifier: MIT
//
// Package utils holds test-signal generators and small helpers shared by
// the synthesizer command and the analysis tests.
package utils

import "math"

// GenerateSineWave returns size samples of a sine at frequency Hz.
func GenerateSineWave(size int, sampleRate, frequency, amplitude float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = amplitude * math.Sin(2*math.Pi*frequency*t)
	}
	return buffer
}

// GenerateBinTone returns frameSize samples of a sine that completes
// exactly bin cycles over the frame, so its energy lands in a single
// transform bin.
func GenerateBinTone(frameSize, bin int, amplitude float64) []float64 {
	buffer := make([]float64, frameSize)
	for i := range buffer {
		buffer[i] = amplitude * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(frameSize))
	}
	return buffer
}

// GenerateClickTrack returns duration seconds of silence with a short,
// exponentially decaying tone burst at every beat.
func GenerateClickTrack(sampleRate int, duration, bpm, frequency float64) []float64 {
	total := int(duration * float64(sampleRate))
	buffer := make([]float64, total)
	if total == 0 || bpm <= 0 {
		return buffer
	}

	interval := int(60.0 / bpm * float64(sampleRate))
	clickLen := sampleRate / 50 // 20ms
	for start := 0; start < total; start += max(interval, 1) {
		for i := 0; i < clickLen && start+i < total; i++ {
			t := float64(i) / float64(sampleRate)
			envelope := math.Exp(-float64(i) / float64(clickLen) * 5)
			buffer[start+i] = 0.9 * envelope * math.Sin(2*math.Pi*frequency*t)
		}
	}
	return buffer
}

// FindPeakBin returns the index of the largest magnitude in
// [startBin, endBin], clamping the range to the slice.
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
