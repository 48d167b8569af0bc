// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import "github.com/Sendspin/sendspin-pcm/pkg/audio"

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write converts buf to the device format and plays it (blocks until written)
	Write(buf *audio.Buffer) error

	// Close releases output resources
	Close() error
}
