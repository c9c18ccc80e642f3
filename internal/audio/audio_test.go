// SPDX-License-Identifier: MIT
package audio

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/joomcode/errorx"

	"onset/pkg/utils"
)

const testSampleRate = 44100

func TestWriteDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		bitDepth  int
		tolerance float64
	}{
		{16, 1.0 / (1 << 15)},
		{24, 1.0 / (1 << 23)},
		{32, 1.0 / (1 << 31)},
	}

	samples := utils.GenerateSineWave(4096, testSampleRate, 440, 0.8)
	samples = append(samples, 1.5, -1.5) // Clipped on write.

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dbit", tt.bitDepth), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tone.wav")
			if err := WriteFile(path, samples, testSampleRate, tt.bitDepth); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			track, err := DecodeFile(path)
			if err != nil {
				t.Fatalf("DecodeFile() error = %v", err)
			}

			if track.Name != "tone.wav" || track.SampleRate != testSampleRate ||
				track.Channels != 1 || track.BitDepth != tt.bitDepth {
				t.Errorf("unexpected track metadata: %+v", track)
			}
			if len(track.Samples) != len(samples) {
				t.Fatalf("decoded %d samples, expected %d", len(track.Samples), len(samples))
			}
			for i, s := range samples {
				want := math.Max(-1, math.Min(1, s))
				if math.Abs(track.Samples[i]-want) > 2*tt.tolerance {
					t.Fatalf("sample %d = %g, expected %g", i, track.Samples[i], want)
				}
			}
		})
	}
}

func TestDecodeTakesFirstChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	// Left ramps up, right is constant.
	const frames = 64
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: testSampleRate},
		Data:           make([]int, 2*frames),
		SourceBitDepth: 16,
	}
	for i := range frames {
		buf.Data[2*i] = i * 100
		buf.Data[2*i+1] = -16384
	}
	enc := wav.NewEncoder(f, testSampleRate, 16, 2, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	track, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if track.Channels != 2 || len(track.Samples) != frames {
		t.Fatalf("got %d channels / %d samples, expected 2 / %d", track.Channels, len(track.Samples), frames)
	}
	for i, s := range track.Samples {
		if want := float64(i*100) / (1 << 15); s != want {
			t.Fatalf("sample %d = %g, expected %g", i, s, want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.wav"))
	if !errorx.IsOfType(err, ErrRead) {
		t.Errorf("missing file: expected ErrRead, got %v", err)
	}

	_, err = Decode(bytes.NewReader([]byte("definitely not a RIFF header")), "junk.wav")
	if !errorx.IsOfType(err, ErrInvalidFile) {
		t.Errorf("junk input: expected ErrInvalidFile, got %v", err)
	}

	err = WriteFile(filepath.Join(t.TempDir(), "x.wav"), nil, testSampleRate, 12)
	if !errorx.IsOfType(err, ErrEncode) {
		t.Errorf("bad bit depth: expected ErrEncode, got %v", err)
	}

	err = WriteFile(filepath.Join(t.TempDir(), "missing-dir", "x.wav"), nil, testSampleRate, 16)
	if !errorx.IsOfType(err, ErrEncode) {
		t.Errorf("bad path: expected ErrEncode, got %v", err)
	}
}

func TestTrackHelpers(t *testing.T) {
	track := &Track{SampleRate: testSampleRate, Samples: make([]float64, testSampleRate/2)}
	if got := track.Duration(); got != 500*time.Millisecond {
		t.Errorf("Duration() = %s, expected 500ms", got)
	}
	if got := (&Track{}).Duration(); got != 0 {
		t.Errorf("Duration() of empty track = %s, expected 0", got)
	}

	track.Samples[1] = 0.25
	f32 := track.Float32()
	if len(f32) != len(track.Samples) || f32[1] != 0.25 {
		t.Errorf("Float32() did not convert samples")
	}
}
