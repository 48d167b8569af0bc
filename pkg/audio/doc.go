// ABOUTME: Audio fundamentals package providing the PCM buffer and its conversions
// ABOUTME: Defines Format, Buffer and the channel and bit depth converters
// Package audio provides PCM sample buffers and format conversion.
//
// This package defines the core types used throughout the library:
//   - Format: channel count, bits per sample and sample rate of a sample sequence
//   - Buffer: interleaved int32 samples tagged with their Format
//
// A Buffer converts between channel layouts and bit depths. Channel
// conversion always runs before bit depth conversion. Both are lossy:
// averaging truncates, narrowing discards low bits, and nothing is dithered.
// Sample rate is carried as metadata, never resampled.
//
// Example:
//
//	buf, err := audio.NewBuffer(samples, audio.Format{
//	    Channels:      2,
//	    BitsPerSample: 16,
//	    SampleRate:    44100,
//	})
//
//	// Downmix to mono 8-bit, leaving buf untouched
//	mono, err := buf.Convert(audio.Format{Channels: 1, BitsPerSample: 8, SampleRate: 44100})
package audio
