// ABOUTME: Audio type definitions
// ABOUTME: Defines the PCM format descriptor and per-depth sample ranges
package audio

import (
	"errors"
	"fmt"
)

const (
	// 8-bit PCM is unsigned and centred on 128
	Offset8Bit = 128

	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	// Widest depth that fits the int32 sample storage
	MaxBitDepth = 32
)

// Format describes how to interpret a PCM sample sequence
type Format struct {
	Channels      int
	BitsPerSample int
	SampleRate    int
}

// String renders the format as e.g. "2ch/16bit/44100Hz"
func (f Format) String() string {
	return fmt.Sprintf("%dch/%dbit/%dHz", f.Channels, f.BitsPerSample, f.SampleRate)
}

// Validate reports every field that is not a legal PCM setting.
// Conversion itself trusts the format; readers, writers and job loaders call this.
func (f Format) Validate() error {
	var errs []error
	if f.Channels < 1 {
		errs = append(errs, fmt.Errorf("channels must be at least 1, got %d", f.Channels))
	}
	switch f.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16, 24, 32)", f.BitsPerSample))
	}
	if f.SampleRate < 1 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %d", f.SampleRate))
	}
	return errors.Join(errs...)
}

// SampleRange returns the smallest and largest value a sample of the given
// depth can hold. 8-bit is unsigned, every other depth is signed.
func SampleRange(bitsPerSample int) (lo, hi int32) {
	if bitsPerSample == 8 {
		return 0, 255
	}
	if bitsPerSample < 1 || bitsPerSample > MaxBitDepth {
		return 0, 0
	}
	hi = int32((int64(1) << (bitsPerSample - 1)) - 1)
	return -hi - 1, hi
}

// Clamp limits sample to the range of the given depth
func Clamp(sample int32, bitsPerSample int) int32 {
	lo, hi := SampleRange(bitsPerSample)
	if sample < lo {
		return lo
	}
	if sample > hi {
		return hi
	}
	return sample
}
