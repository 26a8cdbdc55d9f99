package usecases

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/queue"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
)

type CleanupResult struct {
	Deleted  int64
	Requeued int64
	Dropped  int64
}

type CleanupService interface {
	Enqueue(ctx context.Context, url string, cause error) error
	Drain(ctx context.Context) (CleanupResult, error)
}

type cleanupService struct {
	queue repositories.CleanupQueue
	blobs repositories.BlobStore
	cfg   config.CleanupConfig
}

func NewCleanupService(q repositories.CleanupQueue, blobs repositories.BlobStore, cfg config.CleanupConfig) CleanupService {
	return &cleanupService{
		queue: q,
		blobs: blobs,
		cfg:   cfg,
	}
}

func (s *cleanupService) Enqueue(ctx context.Context, url string, cause error) error {
	job := repositories.CleanupJob{
		URL:        url,
		Attempts:   1,
		EnqueuedAt: time.Now().UTC(),
	}
	if cause != nil {
		job.LastError = cause.Error()
	}
	if err := s.queue.Push(ctx, job); err != nil {
		return err
	}
	logger.Infof("queued blob cleanup for %s", url)
	return nil
}

// Drain pops up to BatchSize jobs and retries them on a worker pool. Jobs
// that fail again go back on the queue until MaxAttempts is reached.
func (s *cleanupService) Drain(ctx context.Context) (CleanupResult, error) {
	batch := s.cfg.BatchSize
	if batch < 1 {
		batch = 100
	}

	// pop the whole batch first so requeued jobs are not retried in the same run
	jobs := make([]repositories.CleanupJob, 0, batch)
	for len(jobs) < batch {
		job, ok, err := s.queue.Pop(ctx)
		if err != nil {
			if len(jobs) == 0 {
				return CleanupResult{}, fmt.Errorf("drain cleanup queue: %w", err)
			}
			logger.Warnf("cleanup queue pop failed after %d jobs: %v", len(jobs), err)
			break
		}
		if !ok {
			break
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return CleanupResult{}, nil
	}

	var deleted, requeued, dropped atomic.Int64
	pool := queue.NewWorkerPool(ctx, s.cfg.Workers, func(ctx context.Context, job repositories.CleanupJob) error {
		err := s.blobs.Delete(ctx, job.URL)
		if err == nil {
			deleted.Add(1)
			return nil
		}
		// a cancelled run is not a failed attempt
		if ctx.Err() == nil {
			job.Attempts++
			job.LastError = err.Error()
			if job.Attempts >= s.cfg.MaxAttempts {
				dropped.Add(1)
				logger.Errorf("giving up on blob %s after %d attempts: %v", job.URL, job.Attempts, err)
				return nil
			}
		}
		if perr := s.queue.Push(context.WithoutCancel(ctx), job); perr != nil {
			dropped.Add(1)
			return fmt.Errorf("requeue %s: %w", job.URL, perr)
		}
		requeued.Add(1)
		return err
	})
	for i, job := range jobs {
		if !pool.AddJob(job) {
			s.putBack(ctx, jobs[i:])
			break
		}
	}
	pool.Wait()
	if left := pool.Unfinished(); len(left) > 0 {
		s.putBack(ctx, left)
	}

	res := CleanupResult{
		Deleted:  deleted.Load(),
		Requeued: requeued.Load(),
		Dropped:  dropped.Load(),
	}
	logger.Infof("blob cleanup run: %d deleted, %d requeued, %d dropped", res.Deleted, res.Requeued, res.Dropped)
	return res, nil
}

func (s *cleanupService) putBack(ctx context.Context, jobs []repositories.CleanupJob) {
	logger.Warnf("cleanup run cancelled, returning %d jobs to the queue", len(jobs))
	ctx = context.WithoutCancel(ctx)
	for _, job := range jobs {
		if err := s.queue.Push(ctx, job); err != nil {
			logger.Errorf("lost cleanup job for %s: %v", job.URL, err)
		}
	}
}
