// SPDX-License-Identifier: MIT
package audio

import (
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteFile encodes mono samples in [-1, 1] as integer PCM WAV at path.
// Samples outside that range are clipped. bitDepth must be 16, 24 or 32.
func WriteFile(path string, samples []float64, sampleRate, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return ErrEncode.New("unsupported bit depth %d", bitDepth)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrEncode.Wrap(err, "creating %s", path)
	}

	encoder := wav.NewEncoder(file, sampleRate, bitDepth, 1, wavFormatPCM)

	peak := float64(int64(1)<<(bitDepth-1)) - 1
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(math.Round(math.Max(-1, math.Min(1, s)) * peak))
	}

	if err := encoder.Write(buf); err != nil {
		file.Close()
		return ErrEncode.Wrap(err, "writing %s", path)
	}
	if err := encoder.Close(); err != nil {
		file.Close()
		return ErrEncode.Wrap(err, "finalizing %s", path)
	}
	if err := file.Close(); err != nil {
		return ErrEncode.Wrap(err, "closing %s", path)
	}

	return nil
}
