// ABOUTME: Entry point for the pcmconv converter
// ABOUTME: Parses CLI flags and converts one file or a YAML batch of files
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sendspin/sendspin-pcm/internal/batch"
	"github.com/Sendspin/sendspin-pcm/internal/config"
	"github.com/Sendspin/sendspin-pcm/internal/version"
)

var (
	input       = flag.String("in", "", "Input audio file (WAV, FLAC, MP3)")
	output      = flag.String("out", "", "Output WAV file")
	channels    = flag.Int("channels", 0, "Target channel count (0 keeps the source layout)")
	bits        = flag.Int("bits", 0, "Target bits per sample: 8, 16, 24 or 32 (0 keeps the source depth)")
	jobsFile    = flag.String("jobs", "", "YAML job file for batch conversion (overrides -in/-out)")
	concurrency = flag.Int("concurrency", 0, "Parallel jobs in batch mode (0 uses the job file setting)")
	logFile     = flag.String("log-file", "pcmconv.log", "Log file path")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	log.Printf("Starting %s: %d job(s), concurrency %d", version.String(), len(cfg.Jobs), cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, skipping remaining jobs...", sig)
		cancel()
	}()

	results := batch.New(cfg.Concurrency).Run(ctx, cfg.Jobs)

	failed := batch.Failed(results)
	for _, res := range results {
		if res.Err != nil {
			log.Printf("FAILED %s: %v", res.Job.Input, res.Err)
		}
	}
	log.Printf("Done: %d converted, %d failed", len(results)-failed, failed)

	if failed > 0 {
		_ = f.Close()
		os.Exit(1)
	}
}

// loadConfig builds the job list from -jobs or from the single-file flags
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if *jobsFile != "" {
		loaded, err := config.Load(*jobsFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		if *input == "" || *output == "" {
			return nil, fmt.Errorf("-in and -out are required unless -jobs is given")
		}
		cfg = &config.Config{
			Concurrency: config.DefaultConcurrency,
			Jobs: []config.Job{{
				Input:         *input,
				Output:        *output,
				Channels:      *channels,
				BitsPerSample: *bits,
			}},
		}
	}

	if *concurrency > 0 {
		cfg.Concurrency = *concurrency
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
