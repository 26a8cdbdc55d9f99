package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisCleanupQueue is a FIFO list: LPUSH on enqueue, RPOP on dequeue.
type RedisCleanupQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisCleanupQueue(rdb *redis.Client, key string) *RedisCleanupQueue {
	return &RedisCleanupQueue{rdb: rdb, key: key}
}

var _ repositories.CleanupQueue = (*RedisCleanupQueue)(nil)

func (q *RedisCleanupQueue) Push(ctx context.Context, job repositories.CleanupJob) error {
	payload, err := SerializeJob(job)
	if err != nil {
		return err
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue cleanup job: %w", err)
	}
	return nil
}

func (q *RedisCleanupQueue) Pop(ctx context.Context) (repositories.CleanupJob, bool, error) {
	for {
		val, err := q.rdb.RPop(ctx, q.key).Result()
		if errors.Is(err, redis.Nil) {
			return repositories.CleanupJob{}, false, nil
		}
		if err != nil {
			return repositories.CleanupJob{}, false, fmt.Errorf("failed to dequeue cleanup job: %w", err)
		}

		job, err := DeserializeJob(val)
		if err != nil {
			// poison entry, drop it and keep going
			logger.Warnf("dropping malformed cleanup job %q: %v", val, err)
			continue
		}
		return *job, true, nil
	}
}

func (q *RedisCleanupQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}
