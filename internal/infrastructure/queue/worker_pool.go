package queue

import (
	"context"
	"sync"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
)

type Handler func(ctx context.Context, job repositories.CleanupJob) error

type Worker struct {
	ID      int
	JobChan <-chan repositories.CleanupJob
	Wg      *sync.WaitGroup
	Handle  Handler
	// Skipped receives jobs taken off JobChan after cancellation.
	Skipped func(repositories.CleanupJob)
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer w.Wg.Done()
		for {
			select {
			case job, ok := <-w.JobChan:
				if !ok {
					return
				}
				if ctx.Err() != nil {
					logger.Debugf("worker %d: job for %s cancelled", w.ID, job.URL)
					if w.Skipped != nil {
						w.Skipped(job)
					}
					continue
				}
				if err := w.Handle(ctx, job); err != nil {
					logger.Warnf("worker %d: cleanup of %s failed: %v", w.ID, job.URL, err)
				}
			case <-ctx.Done():
				logger.Debugf("worker %d: stopping due to context cancellation", w.ID)
				return
			}
		}
	}()
}

type WorkerPool struct {
	JobChan chan repositories.CleanupJob
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once

	mu      sync.Mutex
	skipped []repositories.CleanupJob
}

func NewWorkerPool(parent context.Context, workerCount int, handle Handler) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(parent)
	pool := &WorkerPool{
		JobChan: make(chan repositories.CleanupJob, 100),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workerCount; i++ {
		worker := &Worker{
			ID:      i,
			JobChan: pool.JobChan,
			Wg:      &pool.wg,
			Handle:  handle,
			Skipped: pool.skip,
		}
		pool.wg.Add(1)
		worker.Start(pool.ctx)
	}
	return pool
}

// AddJob reports false when the pool was cancelled before the job was taken.
func (p *WorkerPool) AddJob(job repositories.CleanupJob) bool {
	select {
	case p.JobChan <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Wait lets the workers finish every queued job, then releases them.
func (p *WorkerPool) Wait() {
	p.once.Do(func() { close(p.JobChan) })
	p.wg.Wait()
	p.cancel()
}

// Shutdown stops the workers without running the queued jobs; Unfinished
// returns them.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.once.Do(func() { close(p.JobChan) })
	p.wg.Wait()
}

// Unfinished returns the jobs that were accepted by AddJob but never handed
// to Handle because the pool was cancelled. Call it after Wait or Shutdown.
func (p *WorkerPool) Unfinished() []repositories.CleanupJob {
	p.once.Do(func() { close(p.JobChan) })
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	out := append([]repositories.CleanupJob(nil), p.skipped...)
	for job := range p.JobChan {
		out = append(out, job)
	}
	p.skipped = nil
	return out
}

func (p *WorkerPool) skip(job repositories.CleanupJob) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skipped = append(p.skipped, job)
}
