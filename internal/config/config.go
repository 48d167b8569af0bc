// ABOUTME: Batch conversion job file types and loader
// ABOUTME: Reads YAML job lists and validates every entry before any work starts
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"gopkg.in/yaml.v3"
)

// DefaultConcurrency is used when the job file does not set one
const DefaultConcurrency = 1

// Config is a batch of conversions
type Config struct {
	// Concurrency caps how many jobs run at once
	Concurrency int   `yaml:"concurrency"`
	Jobs        []Job `yaml:"jobs"`
}

// Job converts one input file into one output file.
// Zero Channels or BitsPerSample keeps the source value.
type Job struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	Channels      int    `yaml:"channels"`
	BitsPerSample int    `yaml:"bits_per_sample"`
}

// Target returns the format the job converts src into. The sample rate is
// always the source's, since conversion never resamples.
func (j Job) Target(src audio.Format) audio.Format {
	target := src
	if j.Channels != 0 {
		target.Channels = j.Channels
	}
	if j.BitsPerSample != 0 {
		target.BitsPerSample = j.BitsPerSample
	}
	return target
}

// Load reads the YAML job file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML job file from r, applies defaults and validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency))
	}
	if len(cfg.Jobs) == 0 {
		errs = append(errs, errors.New("jobs: at least one job is required"))
	}

	outputs := make(map[string]int, len(cfg.Jobs))
	for i, job := range cfg.Jobs {
		if job.Input == "" {
			errs = append(errs, fmt.Errorf("jobs[%d].input is required", i))
		}
		if job.Output == "" {
			errs = append(errs, fmt.Errorf("jobs[%d].output is required", i))
		} else if prev, ok := outputs[job.Output]; ok {
			errs = append(errs, fmt.Errorf("jobs[%d].output %q is also written by jobs[%d]", i, job.Output, prev))
		} else {
			outputs[job.Output] = i
		}
		if job.Input != "" && job.Input == job.Output {
			errs = append(errs, fmt.Errorf("jobs[%d]: input and output are the same file", i))
		}
		if job.Channels < 0 {
			errs = append(errs, fmt.Errorf("jobs[%d].channels must not be negative, got %d", i, job.Channels))
		}
		switch job.BitsPerSample {
		case 0, 8, 16, 24, 32:
		default:
			errs = append(errs, fmt.Errorf("jobs[%d].bits_per_sample %d is invalid; valid values: 8, 16, 24, 32", i, job.BitsPerSample))
		}
	}

	return errors.Join(errs...)
}
