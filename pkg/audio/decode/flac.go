// ABOUTME: FLAC audio reader
// ABOUTME: Decodes a FLAC stream into an interleaved sample buffer via mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"github.com/mewkiz/flac"
)

// ReadFLAC decodes a whole FLAC stream into memory.
// FLAC stores 8-bit audio signed, so it is shifted into the unsigned 8-bit range.
func ReadFLAC(r io.Reader) (*audio.Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	format := audio.Format{
		Channels:      int(info.NChannels),
		BitsPerSample: int(info.BitsPerSample),
		SampleRate:    int(info.SampleRate),
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("unsupported FLAC format: %w", err)
	}

	var offset int32
	if format.BitsPerSample == 8 {
		offset = audio.Offset8Bit
	}

	samples := make([]int32, 0, int(info.NSamples)*format.Channels)
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}
		if len(frame.Subframes) != format.Channels {
			return nil, fmt.Errorf("FLAC frame has %d channels, stream declares %d", len(frame.Subframes), format.Channels)
		}

		// Subframes are planar, one per channel
		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < format.Channels; ch++ {
				samples = append(samples, frame.Subframes[ch].Samples[i]+offset)
			}
		}
	}

	return audio.NewBuffer(samples, format)
}
