// ABOUTME: File-based entry point for the container readers
// ABOUTME: Picks the WAV, FLAC or MP3 reader from the file extension
package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
)

// ReadFile loads an audio file into memory, choosing the reader by extension
func ReadFile(path string) (*audio.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .flac, .mp3)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var buf *audio.Buffer
	switch ext {
	case ".wav":
		buf, err = ReadWAV(f)
	case ".flac":
		buf, err = ReadFLAC(f)
	case ".mp3":
		buf, err = ReadMP3(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return buf, nil
}
