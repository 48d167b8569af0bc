// ABOUTME: Tests for the PCM buffer
// ABOUTME: Tests conversion pipeline, copy isolation and in-place updates
package audio

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustBuffer(t *testing.T, samples []int32, format Format) *Buffer {
	t.Helper()
	buf, err := NewBuffer(samples, format)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	return buf
}

func TestNewBuffer(t *testing.T) {
	format := Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100}
	input := []int32{1, 2, 3, 4}
	buf := mustBuffer(t, input, format)

	if buf.Channels() != 2 || buf.BitsPerSample() != 16 || buf.SampleRate() != 44100 {
		t.Errorf("unexpected accessors: %d %d %d", buf.Channels(), buf.BitsPerSample(), buf.SampleRate())
	}
	if buf.Format() != format {
		t.Errorf("expected format %v, got %v", format, buf.Format())
	}
	if buf.Frames() != 2 || buf.Len() != 4 {
		t.Errorf("expected 2 frames / 4 samples, got %d / %d", buf.Frames(), buf.Len())
	}
	if diff := cmp.Diff([]int32{3, 4}, buf.Frame(1)); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}

	// The buffer keeps its own copy of the input
	input[0] = 99
	if buf.Samples()[0] != 1 {
		t.Error("buffer aliases the caller's slice")
	}
}

func TestNewBufferMisaligned(t *testing.T) {
	tests := []struct {
		name    string
		samples []int32
		format  Format
	}{
		{"partial stereo frame", []int32{1, 2, 3}, Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100}},
		{"zero channels", []int32{1}, Format{Channels: 0, BitsPerSample: 16, SampleRate: 44100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuffer(tt.samples, tt.format)
			if !errors.Is(err, ErrMisalignedSamples) {
				t.Errorf("expected ErrMisalignedSamples, got %v", err)
			}
		})
	}
}

func TestBufferConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    []int32
		from, to Format
		expected []int32
	}{
		{
			name:     "mono to stereo",
			input:    []int32{100},
			from:     Format{Channels: 1, BitsPerSample: 16, SampleRate: 44100},
			to:       Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100},
			expected: []int32{100, 100},
		},
		{
			name:     "stereo to mono",
			input:    []int32{100, 200, 100, 101},
			from:     Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100},
			to:       Format{Channels: 1, BitsPerSample: 16, SampleRate: 44100},
			expected: []int32{150, 100},
		},
		{
			name:     "quad to stereo",
			input:    []int32{1, 2, 3, 4},
			from:     Format{Channels: 4, BitsPerSample: 16, SampleRate: 48000},
			to:       Format{Channels: 2, BitsPerSample: 16, SampleRate: 48000},
			expected: []int32{1, 2},
		},
		{
			name:     "8-bit mono to 16-bit",
			input:    []int32{140},
			from:     Format{Channels: 1, BitsPerSample: 8, SampleRate: 8000},
			to:       Format{Channels: 1, BitsPerSample: 16, SampleRate: 8000},
			expected: []int32{3072},
		},
		{
			name:     "16-bit mono to 8-bit",
			input:    []int32{1000},
			from:     Format{Channels: 1, BitsPerSample: 16, SampleRate: 8000},
			to:       Format{Channels: 1, BitsPerSample: 8, SampleRate: 8000},
			expected: []int32{131},
		},
		{
			// Averaging happens in 8-bit (offset) space, then the result is recentred
			name:     "8-bit stereo to 16-bit mono averages first",
			input:    []int32{129, 130},
			from:     Format{Channels: 2, BitsPerSample: 8, SampleRate: 8000},
			to:       Format{Channels: 1, BitsPerSample: 16, SampleRate: 8000},
			expected: []int32{1 << 8},
		},
		{
			name:     "stereo 24-bit to 16-bit keeps layout",
			input:    []int32{1 << 8, -(1 << 8)},
			from:     Format{Channels: 2, BitsPerSample: 24, SampleRate: 96000},
			to:       Format{Channels: 2, BitsPerSample: 16, SampleRate: 96000},
			expected: []int32{1, -1},
		},
		{
			name:     "6 channel 16-bit to stereo 24-bit",
			input:    []int32{1, 2, 3, 4, 5, 6},
			from:     Format{Channels: 6, BitsPerSample: 16, SampleRate: 48000},
			to:       Format{Channels: 2, BitsPerSample: 24, SampleRate: 48000},
			expected: []int32{1 << 8, 2 << 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := mustBuffer(t, tt.input, tt.from)
			result, err := buf.Convert(tt.to)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if result.Format() != tt.to {
				t.Errorf("expected format %v, got %v", tt.to, result.Format())
			}
			if diff := cmp.Diff(tt.expected, result.Samples()); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
			// Source untouched
			if buf.Format() != tt.from {
				t.Errorf("source format changed to %v", buf.Format())
			}
			if diff := cmp.Diff(tt.input, buf.Samples()); diff != "" {
				t.Errorf("source samples changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBufferConvertSameFormat(t *testing.T) {
	format := Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100}
	input := []int32{1, -2, 3, -4}
	buf := mustBuffer(t, input, format)

	result, err := buf.Convert(format)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if result == buf {
		t.Fatal("Convert returned the receiver")
	}
	if diff := cmp.Diff(input, result.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferConvertDoesNotAlias(t *testing.T) {
	formats := []struct {
		name     string
		from, to Format
	}{
		{"identity", Format{2, 16, 44100}, Format{2, 16, 44100}},
		{"bit depth only", Format{2, 16, 44100}, Format{2, 24, 44100}},
		{"take first two", Format{4, 16, 44100}, Format{2, 16, 44100}},
		{"mono identity", Format{1, 16, 44100}, Format{1, 16, 44100}},
		{"mono bit depth", Format{1, 16, 44100}, Format{1, 8, 44100}},
	}

	for _, tt := range formats {
		t.Run(tt.name, func(t *testing.T) {
			buf := mustBuffer(t, []int32{10, 20, 30, 40}, tt.from)
			converted, err := buf.Convert(tt.to)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}

			// Later in-place work on the copy must not reach the source
			if _, err := converted.ConvertInPlace(Format{tt.to.Channels, 32, tt.to.SampleRate}); err != nil {
				t.Fatalf("ConvertInPlace failed: %v", err)
			}
			if diff := cmp.Diff([]int32{10, 20, 30, 40}, buf.Samples()); diff != "" {
				t.Errorf("source changed (-want +got):\n%s", diff)
			}

			// Nor the other way round
			before := converted.Samples()
			if _, err := buf.ConvertInPlace(Format{tt.from.Channels, 8, tt.from.SampleRate}); err != nil {
				t.Fatalf("ConvertInPlace failed: %v", err)
			}
			if diff := cmp.Diff(before, converted.Samples()); diff != "" {
				t.Errorf("copy changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestZeroBuffer(t *testing.T) {
	var buf Buffer
	if buf.Frames() != 0 || buf.Len() != 0 {
		t.Errorf("expected empty zero Buffer, got %d frames / %d samples", buf.Frames(), buf.Len())
	}
	if frame := buf.Frame(0); frame != nil {
		t.Errorf("expected nil frame, got %v", frame)
	}
}

func TestBufferSamplesReturnsCopy(t *testing.T) {
	buf := mustBuffer(t, []int32{1, 2}, Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100})
	view := buf.Samples()
	view[0] = 42
	frame := buf.Frame(0)
	frame[1] = 42
	if diff := cmp.Diff([]int32{1, 2}, buf.Samples()); diff != "" {
		t.Errorf("buffer changed through view (-want +got):\n%s", diff)
	}
}

func TestBufferConvertInPlace(t *testing.T) {
	buf := mustBuffer(t, []int32{100, 200, -100, -101}, Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100})
	view := buf.Samples()

	target := Format{Channels: 1, BitsPerSample: 8, SampleRate: 44100}
	result, err := buf.ConvertInPlace(target)
	if err != nil {
		t.Fatalf("ConvertInPlace failed: %v", err)
	}
	if result != buf {
		t.Fatal("ConvertInPlace did not return the receiver")
	}
	if buf.Format() != target {
		t.Errorf("expected format %v, got %v", target, buf.Format())
	}
	// 150 >> 8 = 0, -101 >> 8 = -1
	if diff := cmp.Diff([]int32{128, 127}, buf.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{100, 200, -100, -101}, view); diff != "" {
		t.Errorf("earlier view changed (-want +got):\n%s", diff)
	}
}

func TestBufferConvertUnsupported(t *testing.T) {
	format := Format{Channels: 2, BitsPerSample: 16, SampleRate: 44100}
	buf := mustBuffer(t, []int32{1, 2}, format)

	result, err := buf.Convert(Format{Channels: 3, BitsPerSample: 16, SampleRate: 44100})
	if !errors.Is(err, ErrUnsupportedChannelConversion) {
		t.Fatalf("expected ErrUnsupportedChannelConversion, got %v", err)
	}
	if result != nil {
		t.Error("expected nil buffer on error")
	}

	_, err = buf.ConvertInPlace(Format{Channels: 3, BitsPerSample: 24, SampleRate: 44100})
	if !errors.Is(err, ErrUnsupportedChannelConversion) {
		t.Fatalf("expected ErrUnsupportedChannelConversion, got %v", err)
	}
	if buf.Format() != format {
		t.Errorf("format changed after failed conversion: %v", buf.Format())
	}
	if diff := cmp.Diff([]int32{1, 2}, buf.Samples()); diff != "" {
		t.Errorf("samples changed after failed conversion (-want +got):\n%s", diff)
	}
}

func TestBufferConvertInvalidBitDepthLeavesReceiver(t *testing.T) {
	format := Format{Channels: 1, BitsPerSample: 16, SampleRate: 44100}
	buf := mustBuffer(t, []int32{1, 2}, format)

	_, err := buf.ConvertInPlace(Format{Channels: 2, BitsPerSample: 0, SampleRate: 44100})
	if !errors.Is(err, ErrInvalidBitDepth) {
		t.Fatalf("expected ErrInvalidBitDepth, got %v", err)
	}
	if buf.Format() != format || buf.Len() != 2 {
		t.Errorf("receiver changed after failed conversion: %v, %d samples", buf.Format(), buf.Len())
	}
}

func TestBufferConvertCarriesSampleRate(t *testing.T) {
	buf := mustBuffer(t, []int32{1, 2, 3}, Format{Channels: 1, BitsPerSample: 16, SampleRate: 44100})
	result, err := buf.Convert(Format{Channels: 1, BitsPerSample: 16, SampleRate: 48000})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if result.SampleRate() != 48000 {
		t.Errorf("expected 48000, got %d", result.SampleRate())
	}
	if result.Frames() != 3 {
		t.Errorf("expected sample count unchanged, got %d frames", result.Frames())
	}
}
