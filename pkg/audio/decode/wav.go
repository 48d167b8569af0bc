// ABOUTME: WAV container reader
// ABOUTME: Reads integer PCM WAV files into a sample buffer via go-audio/wav
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

// WAVE format tags
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// wavSubFormatPCM is KSDATAFORMAT_SUBTYPE_PCM as it appears on disk
var wavSubFormatPCM = [16]byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// wavExtensibleFmt is the layout of a WAVE_FORMAT_EXTENSIBLE fmt chunk
type wavExtensibleFmt struct {
	AudioFormat    uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtensionSize  uint16
	ValidBits      uint16
	ChannelMask    uint32
	SubFormat      [16]byte
}

// ReadWAV reads a whole integer PCM WAV stream into memory
func ReadWAV(r io.ReadSeeker) (*audio.Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("invalid WAV file: %w", err)
		}
		return nil, fmt.Errorf("invalid WAV file")
	}
	switch dec.WavAudioFormat {
	case wavFormatPCM:
	case wavFormatExtensible:
		sub, err := wavSubFormat(r)
		if err != nil {
			return nil, fmt.Errorf("invalid WAV file: %w", err)
		}
		if sub != wavSubFormatPCM {
			return nil, fmt.Errorf("unsupported WAV encoding: extensible subformat %x is not PCM", sub)
		}
	default:
		return nil, fmt.Errorf("unsupported WAV encoding: format tag %d (supported: 1 = PCM, 65534 = extensible PCM)", dec.WavAudioFormat)
	}

	format := audio.Format{
		Channels:      int(dec.NumChans),
		BitsPerSample: int(dec.BitDepth),
		SampleRate:    int(dec.SampleRate),
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("unsupported WAV format: %w", err)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV samples: %w", err)
	}

	samples := make([]int32, len(pcm.Data))
	for i, s := range pcm.Data {
		samples[i] = int32(s)
	}

	buf, err := audio.NewBuffer(samples, format)
	if err != nil {
		return nil, fmt.Errorf("corrupt WAV data: %w", err)
	}
	return buf, nil
}

// wavSubFormat reads the subformat GUID of an extensible fmt chunk. The
// stream position is restored before returning.
func wavSubFormat(r io.ReadSeeker) ([16]byte, error) {
	var sub [16]byte
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return sub, err
	}
	defer r.Seek(pos, io.SeekStart)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return sub, err
	}
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return sub, err
	}
	for {
		chunk, err := p.NextChunk()
		if err != nil {
			return sub, fmt.Errorf("fmt chunk not found: %w", err)
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}
		var ext wavExtensibleFmt
		if chunk.Size < binary.Size(ext) {
			return sub, fmt.Errorf("extensible fmt chunk is %d bytes, expected at least %d", chunk.Size, binary.Size(ext))
		}
		if err := chunk.ReadLE(&ext); err != nil {
			return sub, err
		}
		return ext.SubFormat, nil
	}
}
