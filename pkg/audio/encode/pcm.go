// ABOUTME: PCM audio encoder
// ABOUTME: Encodes int32 samples to little-endian 8, 16, 24 or 32-bit PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
)

var _ Encoder = (*PCMEncoder)(nil)

// PCMEncoder encodes PCM audio. Samples outside the range of the bit depth are clamped.
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid PCM format: %w", err)
	}

	return &PCMEncoder{
		bitDepth: format.BitsPerSample,
	}, nil
}

// Encode converts int32 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	width := e.bitDepth / 8
	output := make([]byte, len(samples)*width)

	for i, sample := range samples {
		s := audio.Clamp(sample, e.bitDepth)
		switch e.bitDepth {
		case 8:
			output[i] = byte(s)
		case 16:
			binary.LittleEndian.PutUint16(output[i*2:], uint16(int16(s)))
		case 24:
			// Take lower 24 bits, pack little-endian
			output[i*3] = byte(s)
			output[i*3+1] = byte(s >> 8)
			output[i*3+2] = byte(s >> 16)
		case 32:
			binary.LittleEndian.PutUint32(output[i*4:], uint32(s))
		}
	}

	return output, nil
}

// EncodeBuffer encodes a buffer whose bit depth matches the encoder
func (e *PCMEncoder) EncodeBuffer(buf *audio.Buffer) ([]byte, error) {
	if buf.BitsPerSample() != e.bitDepth {
		return nil, fmt.Errorf("buffer is %d-bit, encoder is %d-bit", buf.BitsPerSample(), e.bitDepth)
	}
	return e.Encode(buf.Samples())
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
