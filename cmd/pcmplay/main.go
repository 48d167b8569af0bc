// ABOUTME: Entry point for the pcmplay test player
// ABOUTME: Loads an audio file, converts it for the device and plays it through oto
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sendspin/sendspin-pcm/internal/version"
	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"github.com/Sendspin/sendspin-pcm/pkg/audio/decode"
	"github.com/Sendspin/sendspin-pcm/pkg/audio/output"
)

// chunkFrames is how much audio each device write carries
const chunkFrames = 4096

var (
	audioFile = flag.String("audio", "", "Audio file to play (WAV, FLAC, MP3)")
	channels  = flag.Int("channels", 2, "Device channel count (1 or 2)")
	volume    = flag.Int("volume", 100, "Playback volume (0-100)")
	logFile   = flag.String("log-file", "pcmplay.log", "Log file path")
)

func main() {
	flag.Parse()

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	if *audioFile == "" {
		log.Fatalf("-audio is required")
	}

	buf, err := decode.ReadFile(*audioFile)
	if err != nil {
		log.Fatalf("Failed to load audio: %v", err)
	}
	seconds := float64(buf.Frames()) / float64(buf.SampleRate())
	log.Printf("%s playing %s (%v, %.1fs)", version.String(), *audioFile, buf.Format(), seconds)

	out := output.NewOto()
	out.SetVolume(*volume)
	if err := out.Open(buf.SampleRate(), *channels); err != nil {
		log.Fatalf("Failed to open audio output: %v", err)
	}
	defer out.Close()

	// Handle shutdown
	stop := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, stopping playback...", sig)
		close(stop)
	}()

	if err := play(out, buf, stop); err != nil {
		log.Fatalf("Playback error: %v", err)
	}

	// Let the device drain what is already queued
	select {
	case <-stop:
	case <-time.After(500 * time.Millisecond):
	}
	log.Printf("Playback finished")
}

// play writes buf to out in chunks until the end or until stop closes
func play(out output.Output, buf *audio.Buffer, stop <-chan struct{}) error {
	samples := buf.Samples()
	step := chunkFrames * buf.Channels()

	for start := 0; start < len(samples); start += step {
		select {
		case <-stop:
			return nil
		default:
		}

		end := min(start+step, len(samples))
		chunk, err := audio.NewBuffer(samples[start:end], buf.Format())
		if err != nil {
			return fmt.Errorf("chunk at sample %d: %w", start, err)
		}
		if err := out.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}
