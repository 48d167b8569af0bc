// ABOUTME: PCM audio decoder
// ABOUTME: Decodes little-endian 8, 16, 24 and 32-bit PCM to int32 samples
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
)

var _ Decoder = (*PCMDecoder)(nil)

// PCMDecoder decodes little-endian PCM audio.
// Samples keep their native range: 8-bit stays unsigned 0-255, wider depths are signed.
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid PCM format: %w", err)
	}

	return &PCMDecoder{
		format: format,
	}, nil
}

// Decode converts PCM bytes to int32 samples
func (d *PCMDecoder) Decode(data []byte) ([]int32, error) {
	width := d.format.BitsPerSample / 8
	if len(data)%width != 0 {
		return nil, fmt.Errorf("PCM data length %d is not a multiple of %d-byte samples", len(data), width)
	}

	numSamples := len(data) / width
	samples := make([]int32, numSamples)

	switch d.format.BitsPerSample {
	case 8:
		// 8-bit PCM is unsigned
		for i := 0; i < numSamples; i++ {
			samples[i] = int32(data[i])
		}
	case 16:
		for i := 0; i < numSamples; i++ {
			samples[i] = int32(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	case 24:
		for i := 0; i < numSamples; i++ {
			b := data[i*3:]
			val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			// Sign extend from 24-bit to 32-bit
			if val&0x800000 != 0 {
				val |= ^0xFFFFFF
			}
			samples[i] = val
		}
	case 32:
		for i := 0; i < numSamples; i++ {
			samples[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		}
	}

	return samples, nil
}

// DecodeBuffer decodes data and wraps the samples in a buffer of the decoder's format
func (d *PCMDecoder) DecodeBuffer(data []byte) (*audio.Buffer, error) {
	samples, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	return audio.NewBuffer(samples, d.format)
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
