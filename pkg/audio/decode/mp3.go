// ABOUTME: MP3 audio reader
// ABOUTME: Decodes an MP3 stream into a 16-bit stereo buffer via go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// ReadMP3 decodes a whole MP3 stream into memory.
// go-mp3 always produces 16-bit little-endian stereo.
func ReadMP3(r io.Reader) (*audio.Buffer, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	// Drop a trailing partial frame (4 bytes per stereo 16-bit frame)
	data = data[:len(data)-len(data)%4]

	samples := make([]int32, len(data)/2)
	for i := range samples {
		samples[i] = int32(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}

	return audio.NewBuffer(samples, audio.Format{
		Channels:      2,
		BitsPerSample: 16,
		SampleRate:    decoder.SampleRate(),
	})
}
