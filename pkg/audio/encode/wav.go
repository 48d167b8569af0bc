// ABOUTME: WAV container writer
// ABOUTME: Writes a sample buffer as integer PCM WAV via go-audio/wav
package encode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE format tag for linear integer PCM
const wavFormatPCM = 1

// WriteWAV writes buf as a complete WAV stream. The writer is not closed.
func WriteWAV(w io.WriteSeeker, buf *audio.Buffer) error {
	format := buf.Format()
	if err := format.Validate(); err != nil {
		return fmt.Errorf("cannot write WAV: %w", err)
	}

	data := make([]int, buf.Len())
	for i, s := range buf.Samples() {
		data[i] = int(audio.Clamp(s, format.BitsPerSample))
	}

	enc := wav.NewEncoder(w, format.SampleRate, format.BitsPerSample, format.Channels, wavFormatPCM)
	err := enc.Write(&goaudio.IntBuffer{
		Data: data,
		Format: &goaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		SourceBitDepth: format.BitsPerSample,
	})
	if err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}

// WriteFile writes buf to path. Only .wav output is supported.
func WriteFile(path string, buf *audio.Buffer) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" {
		return fmt.Errorf("unsupported output format: %s (supported: .wav)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteWAV(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
