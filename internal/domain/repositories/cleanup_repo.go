package repositories

import (
	"context"
	"time"
)

type CleanupJob struct {
	URL        string    `json:"url"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"last_error,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// CleanupQueue holds blob deletions that failed and should be retried.
type CleanupQueue interface {
	Push(ctx context.Context, job CleanupJob) error
	// Pop returns ok=false when the queue is empty.
	Pop(ctx context.Context) (job CleanupJob, ok bool, err error)
}

// ThumbnailCache maps a Vimeo id to its resolved thumbnail link.
type ThumbnailCache interface {
	Get(ctx context.Context, vimeoID string) (string, bool)
	Set(ctx context.Context, vimeoID, link string, ttl time.Duration)
}
