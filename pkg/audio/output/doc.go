// ABOUTME: Audio output package for playing sample buffers
// ABOUTME: Provides the Output interface and an oto implementation
// Package output provides audio playback.
//
// The oto backend always runs the device at 16-bit. Buffers of any bit
// depth are converted with audio.Buffer.Convert before they are written,
// and mono or multichannel input is mapped to the device channel count.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(buf.SampleRate(), 2)
//	err = out.Write(buf)
package output
