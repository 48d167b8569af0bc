// ABOUTME: Audio decoding package for raw PCM and container files
// ABOUTME: Provides the PCM Decoder and WAV, FLAC, MP3 readers
// Package decode turns encoded audio into audio.Buffer values.
//
// Supports: raw little-endian PCM (8, 16, 24, 32-bit), WAV, FLAC, MP3
//
// Samples keep the native range of their bit depth. 8-bit audio is
// unsigned with a 128 offset, every other depth is signed.
//
// Example:
//
//	buf, err := decode.ReadFile("input.flac")
//	mono, err := buf.Convert(audio.Format{Channels: 1, BitsPerSample: 16, SampleRate: buf.SampleRate()})
package decode
