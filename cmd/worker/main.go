package main // blob cleanup worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/cache"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/queue"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/storage"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"
	consts "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatalf("redis connection failed: %v", err)
	}
	if rdb == nil {
		logger.Fatalf("the cleanup worker needs redis: set REDIS_ADDR or REDIS_HOST")
	}
	defer rdb.Close()

	blobStore, err := storage.New(cfg)
	if err != nil {
		logger.Fatalf("blob storage: %v", err)
	}
	cleanupQueue := queue.NewRedisCleanupQueue(rdb, consts.CleanupQueueKey)
	cleanup := usecases.NewCleanupService(cleanupQueue, blobStore, cfg.Cleanup)

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err = c.AddFunc(cfg.Cleanup.Schedule, func() {
		pending, err := cleanupQueue.Len(ctx)
		if err != nil {
			logger.Errorf("cleanup queue length: %v", err)
			return
		}
		if pending == 0 {
			return
		}
		logger.Infof("cleanup run starting, %d blobs pending", pending)
		if _, err := cleanup.Drain(ctx); err != nil {
			logger.Errorf("cleanup run failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("invalid CLEANUP_SCHEDULE %q: %v", cfg.Cleanup.Schedule, err)
	}
	c.Start()
	logger.Infof("cleanup worker started (schedule %q, %d workers)", cfg.Cleanup.Schedule, cfg.Cleanup.Workers)

	<-ctx.Done()
	logger.Infof("shutdown signal received, waiting for the running cleanup")

	done := c.Stop()
	select {
	case <-done.Done():
	case <-time.After(30 * time.Second):
		logger.Warnf("cleanup run still active after 30s, exiting")
	}
	logger.Infof("cleanup worker stopped")
}
