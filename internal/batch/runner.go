// ABOUTME: Concurrent batch converter
// ABOUTME: Runs config jobs through read, convert and write with bounded parallelism
package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Sendspin/sendspin-pcm/internal/config"
	"github.com/Sendspin/sendspin-pcm/pkg/audio"
	"github.com/Sendspin/sendspin-pcm/pkg/audio/decode"
	"github.com/Sendspin/sendspin-pcm/pkg/audio/encode"
	"golang.org/x/sync/errgroup"
)

// Runner converts files. Read and Write default to the file codecs
// and can be swapped in tests.
type Runner struct {
	Concurrency int
	Read        func(path string) (*audio.Buffer, error)
	Write       func(path string, buf *audio.Buffer) error
}

// Result is the outcome of one job
type Result struct {
	Job      config.Job
	From     audio.Format
	To       audio.Format
	Frames   int
	Duration time.Duration
	Err      error
}

// New creates a runner backed by decode.ReadFile and encode.WriteFile
func New(concurrency int) *Runner {
	return &Runner{
		Concurrency: concurrency,
		Read:        decode.ReadFile,
		Write:       encode.WriteFile,
	}
}

// Run executes all jobs and returns one result per job, in job order.
// A failing job does not stop the others. Jobs not yet started when ctx
// is cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []config.Job) []Result {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(r.Concurrency, 1))
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = r.runJob(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) runJob(ctx context.Context, job config.Job) Result {
	res := Result{Job: job}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	src, err := r.Read(job.Input)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", job.Input, err)
		return res
	}
	res.From = src.Format()
	res.To = job.Target(res.From)

	// In place: src is owned by this job and not needed afterwards
	if _, err := src.ConvertInPlace(res.To); err != nil {
		res.Err = fmt.Errorf("convert %s from %v to %v: %w", job.Input, res.From, res.To, err)
		return res
	}

	if err := r.Write(job.Output, src); err != nil {
		res.Err = fmt.Errorf("write %s: %w", job.Output, err)
		return res
	}

	res.Frames = src.Frames()
	res.Duration = time.Since(start)
	log.Printf("Converted %s (%v) -> %s (%v): %d frames in %v",
		job.Input, res.From, job.Output, res.To, res.Frames, res.Duration.Round(time.Millisecond))
	return res
}

// Failed counts results that carry an error
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
