// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays sample buffers as 16-bit PCM with software volume control
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// deviceBitDepth is the only sample format oto is opened with
const deviceBitDepth = 16

var _ Output = (*Oto)(nil)

// devicePlayer drains a reader to the sound card
type devicePlayer interface {
	Play()
	Close() error
}

// deviceContext is the process-wide device handle players are created from
type deviceContext interface {
	NewPlayer(r io.Reader) devicePlayer
	Suspend() error
	Resume() error
}

type otoContext struct {
	*oto.Context
}

func (c otoContext) NewPlayer(r io.Reader) devicePlayer {
	return c.Context.NewPlayer(r)
}

func openOtoContext(sampleRate, channels int) (deviceContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan
	return otoContext{ctx}, nil
}

// Oto output implementation using oto library
type Oto struct {
	openContext func(sampleRate, channels int) (deviceContext, error)

	otoCtx     deviceContext
	player     devicePlayer
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     int
	muted      bool
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		openContext: openOtoContext,
		volume:      100,
		muted:       false,
	}
}

// Open initializes the output device. After Close it may be opened again
// with the same format.
func (o *Oto) Open(sampleRate, channels int) error {
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		if o.ready {
			log.Printf("Audio output already initialized with same format, reusing context")
			return nil
		}
		if err := o.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume audio output: %w", err)
		}
		o.startPlayer()
		log.Printf("Audio output reopened: %dHz, %d channels", sampleRate, channels)
		return nil
	}

	// oto only allows one context per process
	if o.otoCtx != nil {
		return fmt.Errorf("output already opened at %dHz %dch, cannot reopen at %dHz %dch",
			o.sampleRate, o.channels, sampleRate, channels)
	}

	ctx, err := o.openContext(sampleRate, channels)
	if err != nil {
		return err
	}

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.startPlayer()

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// startPlayer creates the stream pipe and the persistent player reading it
func (o *Oto) startPlayer() {
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true
}

// Write outputs a buffer (blocks until written)
func (o *Oto) Write(buf *audio.Buffer) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	output, err := devicePCM(buf, o.channels, o.volume, o.muted)
	if err != nil {
		return err
	}

	// Write to pipe (which feeds the persistent player)
	if _, err := o.pipeWriter.Write(output); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	return o.volume
}

// IsMuted returns mute state
func (o *Oto) IsMuted() bool {
	return o.muted
}

// devicePCM converts buf to the device's channel count and 16-bit depth,
// applies volume and packs the result as little-endian bytes
func devicePCM(buf *audio.Buffer, channels, volume int, muted bool) ([]byte, error) {
	target := audio.Format{
		Channels:      channels,
		BitsPerSample: deviceBitDepth,
		SampleRate:    buf.SampleRate(),
	}
	converted, err := buf.Convert(target)
	if err != nil {
		return nil, fmt.Errorf("cannot play %v on %dch output: %w", buf.Format(), channels, err)
	}

	samples := applyVolume(converted.Samples(), volume, muted)

	output := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(output[i*2:], uint16(int16(sample)))
	}
	return output, nil
}

// applyVolume applies volume and mute to 16-bit samples with clipping protection
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := getVolumeMultiplier(volume, muted)

	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * multiplier)

		// Clamp to 16-bit range to prevent overflow
		if scaled > math.MaxInt16 {
			scaled = math.MaxInt16
		} else if scaled < math.MinInt16 {
			scaled = math.MinInt16
		}

		result[i] = int32(scaled)
	}

	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
