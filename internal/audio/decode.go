// SPDX-License-Identifier: MIT
/*
Package audio converts between WAV files and the normalized mono sample
sequences the analysis pipeline consumes.

Decoding keeps only the first channel of multi-channel files. Integer PCM
is scaled to [-1, 1) by its bit depth.
*/
package audio

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/wav"
	"github.com/joomcode/errorx"
)

// Error types surfaced by decoding and encoding.
var (
	Errors         = errorx.NewNamespace("audio")
	ErrRead        = Errors.NewType("read")
	ErrInvalidFile = Errors.NewType("invalid_file")
	ErrDecode      = Errors.NewType("decode")
	ErrEncode      = Errors.NewType("encode")
)

const wavFormatPCM = 1

// Track is a decoded, single-channel audio file.
type Track struct {
	Name       string    // Base name of the source file.
	SampleRate int       // Samples per second.
	Channels   int       // Channel count of the source file.
	BitDepth   int       // Bits per sample of the source file.
	Samples    []float64 // First channel, normalized to [-1, 1).
}

// Duration returns the length of the track.
func (t *Track) Duration() time.Duration {
	if t.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(t.Samples)) / float64(t.SampleRate) * float64(time.Second))
}

// Float32 returns the samples narrowed to single precision.
func (t *Track) Float32() []float32 {
	out := make([]float32, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = float32(s)
	}
	return out
}

// DecodeFile opens and decodes the WAV file at path.
func DecodeFile(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrRead.Wrap(err, "opening %s", path)
	}
	defer f.Close()

	return Decode(f, filepath.Base(path))
}

// Decode reads a complete PCM WAV stream. name is used for Track.Name and
// error messages.
func Decode(r io.ReadSeeker, name string) (*Track, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidFile.New("%s is not a valid WAV file", name)
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, ErrDecode.New("%s: unsupported WAV format %d, only integer PCM is supported", name, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, ErrDecode.Wrap(err, "decoding %s", name)
	}

	channels := int(d.NumChans)
	bitDepth := int(d.BitDepth)
	if channels < 1 || bitDepth < 8 || bitDepth > 32 {
		return nil, ErrDecode.New("%s: unsupported layout (%d channels, %d bits)", name, channels, bitDepth)
	}

	// 8-bit PCM is unsigned, wider depths are signed.
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels]-offset) * scale
	}

	return &Track{
		Name:       name,
		SampleRate: int(d.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
		Samples:    samples,
	}, nil
}
