// ABOUTME: PCM sample buffer tagged with its format
// ABOUTME: Runs channel then bit depth conversion, as a copy or in place
package audio

import "fmt"

// Buffer holds interleaved PCM samples and the format they were produced under.
// Frame i of an N-channel buffer is samples[i*N : i*N+N].
//
// A Buffer is not safe for concurrent use; callers sharing one must synchronise.
type Buffer struct {
	samples []int32
	format  Format
}

// NewBuffer wraps a copy of samples. The sample count must be a whole
// number of frames for format.Channels.
func NewBuffer(samples []int32, format Format) (*Buffer, error) {
	if format.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrMisalignedSamples, format.Channels)
	}
	if len(samples)%format.Channels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrMisalignedSamples, len(samples), format.Channels)
	}
	return &Buffer{
		samples: append([]int32(nil), samples...),
		format:  format,
	}, nil
}

// Convert returns a new buffer holding the samples converted to target.
// The receiver is left unchanged and shares no storage with the result.
func (b *Buffer) Convert(target Format) (*Buffer, error) {
	samples, format, err := convert(b.samples, b.format, target)
	if err != nil {
		return nil, err
	}
	return &Buffer{samples: samples, format: format}, nil
}

// ConvertInPlace replaces the receiver's samples and format with the
// converted result and returns the receiver. On error nothing changes.
// Slices previously returned by Samples or Frame keep the old data.
func (b *Buffer) ConvertInPlace(target Format) (*Buffer, error) {
	samples, format, err := convert(b.samples, b.format, target)
	if err != nil {
		return nil, err
	}
	b.samples = samples
	b.format = format
	return b, nil
}

// convert is the shared pipeline: channels first, then bit depth.
// Averaging must happen in the source depth's range, so the order is fixed.
// Both stages allocate, so the result never aliases samples.
func convert(samples []int32, from, to Format) ([]int32, Format, error) {
	out := samples
	copied := false

	if from.Channels != to.Channels {
		converted, err := ConvertChannels(out, from.Channels, to.Channels)
		if err != nil {
			return nil, Format{}, err
		}
		out = converted
		copied = true
	}

	if from.BitsPerSample != to.BitsPerSample {
		converted, err := ConvertBitDepth(out, from.BitsPerSample, to.BitsPerSample)
		if err != nil {
			return nil, Format{}, err
		}
		out = converted
		copied = true
	}

	if !copied {
		out = append([]int32(nil), samples...)
	}
	return out, to, nil
}

// Format returns the buffer's current format
func (b *Buffer) Format() Format { return b.format }

// Channels returns the current channel count
func (b *Buffer) Channels() int { return b.format.Channels }

// BitsPerSample returns the current bit depth
func (b *Buffer) BitsPerSample() int { return b.format.BitsPerSample }

// SampleRate returns the sample rate in Hz. Conversion never changes the
// audio's timing; the target's rate is recorded as metadata only.
func (b *Buffer) SampleRate() int { return b.format.SampleRate }

// Samples returns a copy of the interleaved samples
func (b *Buffer) Samples() []int32 {
	return append([]int32(nil), b.samples...)
}

// Len returns the total number of samples across all channels
func (b *Buffer) Len() int { return len(b.samples) }

// Frames returns the number of frames. A zero Buffer has none.
func (b *Buffer) Frames() int {
	if b.format.Channels < 1 {
		return 0
	}
	return len(b.samples) / b.format.Channels
}

// Frame returns a copy of frame i, one value per channel
func (b *Buffer) Frame(i int) []int32 {
	n := b.format.Channels
	if n < 1 {
		return nil
	}
	return append([]int32(nil), b.samples[i*n:(i+1)*n]...)
}
