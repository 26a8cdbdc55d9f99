package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
)

// flakyStore fails deletes for the URLs in failing.
type flakyStore struct {
	fakeBlobStore
	mu      sync.Mutex
	failing map[string]bool
	ok      []string
}

func (s *flakyStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing[url] {
		return errors.New("still locked")
	}
	s.ok = append(s.ok, url)
	return nil
}

func TestDrainRetriesAndRequeues(t *testing.T) {
	q := &memQueue{}
	store := &flakyStore{failing: map[string]bool{"https://blob.test/b": true}}
	svc := NewCleanupService(q, store, config.CleanupConfig{MaxAttempts: 3, Workers: 2, BatchSize: 10})
	ctx := context.Background()

	for _, url := range []string{"https://blob.test/a", "https://blob.test/b", "https://blob.test/c"} {
		if err := svc.Enqueue(ctx, url, errors.New("first failure")); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	res, err := svc.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if res.Deleted != 2 || res.Requeued != 1 || res.Dropped != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	left := q.snapshot()
	if len(left) != 1 || left[0].URL != "https://blob.test/b" || left[0].Attempts != 2 {
		t.Fatalf("expected b requeued with 2 attempts, got %+v", left)
	}

	res, err = svc.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if res.Dropped != 1 || len(q.snapshot()) != 0 {
		t.Fatalf("expected b to be dropped at max attempts, got %+v, queue %+v", res, q.snapshot())
	}
}

func TestDrainRespectsBatchSize(t *testing.T) {
	q := &memQueue{}
	store := &flakyStore{}
	svc := NewCleanupService(q, store, config.CleanupConfig{MaxAttempts: 3, Workers: 1, BatchSize: 2})

	for i := 0; i < 5; i++ {
		q.Push(context.Background(), repositories.CleanupJob{URL: "https://blob.test/x"})
	}
	res, err := svc.Drain(context.Background())
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if res.Deleted != 2 || len(q.snapshot()) != 3 {
		t.Fatalf("expected 2 processed and 3 left, got %+v and %d", res, len(q.snapshot()))
	}
}

func TestDrainEmptyQueue(t *testing.T) {
	svc := NewCleanupService(&memQueue{}, &flakyStore{}, config.CleanupConfig{MaxAttempts: 3, Workers: 1, BatchSize: 2})
	res, err := svc.Drain(context.Background())
	if err != nil || res != (CleanupResult{}) {
		t.Fatalf("expected empty result, got %+v, %v", res, err)
	}
}

// cancellingStore cancels the run on its first delete, like a SIGTERM
// arriving mid-drain.
type cancellingStore struct {
	fakeBlobStore
	cancel context.CancelFunc
	mu     sync.Mutex
	calls  int
}

func (s *cancellingStore) Delete(ctx context.Context, _ string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.cancel()
	<-ctx.Done()
	return ctx.Err()
}

func TestDrainCancelledMidRunKeepsEveryJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &memQueue{}
	store := &cancellingStore{cancel: cancel}
	svc := NewCleanupService(q, store, config.CleanupConfig{MaxAttempts: 3, Workers: 1, BatchSize: 10})

	urls := []string{"https://blob.test/a", "https://blob.test/b", "https://blob.test/c", "https://blob.test/d"}
	for _, url := range urls {
		if err := svc.Enqueue(context.Background(), url, nil); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	if _, err := svc.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	left := q.snapshot()
	if len(left) != len(urls) {
		t.Fatalf("expected all %d jobs back on the queue, got %+v", len(urls), left)
	}
	for _, job := range left {
		if job.Attempts != 1 {
			t.Fatalf("interrupted job %s should keep its attempt count, got %d", job.URL, job.Attempts)
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected a single delete before cancellation, got %d", store.calls)
	}
}
