package execution

import (
	"context"

	"pst/internal/domain"
)

// Executor runs a distributed set of buckets
type Executor interface {
	Execute(ctx context.Context, buckets []domain.Bucket) (*domain.RunResult, error)
}

// WorkerRunner runs a single bucket as thread index+1
type WorkerRunner interface {
	Run(ctx context.Context, bucket domain.Bucket, index int) (domain.WorkerResult, error)
}

// Progress is notified as threads finish
type Progress interface {
	Update(finished, passed, failed int)
	Finish()
}

var (
	_ Executor     = (*Coordinator)(nil)
	_ WorkerRunner = (*Supervisor)(nil)
)
