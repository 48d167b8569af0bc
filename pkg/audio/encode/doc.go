// ABOUTME: Audio encoder package for encoding PCM buffers
// ABOUTME: Provides the PCM Encoder and a WAV writer
// Package encode provides raw PCM encoding and WAV output.
//
// Supports: PCM (8, 16, 24 and 32-bit little-endian), WAV
//
// Encoders accept samples in the native range of the target bit
// depth and clamp anything outside it.
//
// Example:
//
//	encoder, err := encode.NewPCM(buf.Format())
//	data, err := encoder.EncodeBuffer(buf)
//
//	err = encode.WriteFile("out.wav", buf)
package encode
