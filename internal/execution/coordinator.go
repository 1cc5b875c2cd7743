package execution

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pst/internal/domain"
)

// Coordinator runs every bucket concurrently, one worker per bucket
type Coordinator struct {
	runner   WorkerRunner
	progress Progress
	log      logrus.FieldLogger
}

// NewCoordinator creates a Coordinator
func NewCoordinator(runner WorkerRunner, log logrus.FieldLogger) *Coordinator {
	return &Coordinator{runner: runner, log: log}
}

// SetProgress sets the progress indicator for the coordinator
func (c *Coordinator) SetProgress(progress Progress) {
	c.progress = progress
}

// Execute starts one worker per bucket and waits for all of them. Index i
// is the bucket's position, so the heaviest bucket starts first.
//
// The first worker error (a *BailError or a failure to start) cancels the
// others; their processes are terminated and reaped before Execute returns
// that error alongside the partial result.
func (c *Coordinator) Execute(ctx context.Context, buckets []domain.Bucket) (*domain.RunResult, error) {
	start := time.Now()
	results := make([]domain.WorkerResult, len(buckets))

	var mu sync.Mutex
	var finished, passed, failed int

	g, gctx := errgroup.WithContext(ctx)
	for i, bucket := range buckets {
		g.Go(func() error {
			result, err := c.runner.Run(gctx, bucket, i)
			results[i] = result
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					c.log.WithError(err).WithField("thread", i+1).Debug("Worker aborted the run")
				}
				return err
			}

			mu.Lock()
			finished++
			if result.Success() {
				passed++
			} else {
				failed++
			}
			if c.progress != nil {
				c.progress.Update(finished, passed, failed)
			}
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	if c.progress != nil {
		c.progress.Finish()
	}

	run := &domain.RunResult{Workers: results, Duration: time.Since(start)}
	c.log.WithFields(logrus.Fields{
		"threads":  len(buckets),
		"duration": run.Duration.Round(time.Millisecond),
	}).Debug("Run finished")
	return run, err
}
