// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for raw PCM decoders
package decode

// Decoder decodes encoded audio to interleaved PCM int32 samples
type Decoder interface {
	// Decode converts encoded audio data to PCM samples
	Decode(data []byte) ([]int32, error)

	// Close releases decoder resources
	Close() error
}
