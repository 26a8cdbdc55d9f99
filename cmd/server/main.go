package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/delivery/http/routers"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/cache"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/db"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/queue"
	infra_repo "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/storage"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/vimeo"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"
	consts "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"

	_ "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/migrations"

	"github.com/joho/godotenv"
)

// @title          Portfolio Video Catalog API
// @version        1.0
// @description    Video catalog with blob uploads, Vimeo passthrough and a cookie based admin gate.
// @BasePath       /api
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

	if err := config.EnsureDirs(cfg); err != nil {
		logger.Fatalf("failed to prepare blob directory: %v", err)
	}

	database, err := db.NewDB(cfg.Database)
	if err != nil {
		logger.Fatalf("database connection failed: %v", err)
	}
	if cfg.Database.AutoMigrate || cfg.Database.Driver == "sqlite" {
		if err := db.Migrate(database, cfg.Database); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
	}

	ctx := context.Background()
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		// the catalog works without redis, only caching and cleanup are lost
		logger.Warnf("redis unavailable, continuing without it: %v", err)
	}

	blobStore, err := storage.New(cfg)
	if err != nil {
		logger.Fatalf("blob storage: %v", err)
	}
	blobs := usecases.NewBlobGateway(blobStore, cfg.Thumbnail)

	var thumbCache repositories.ThumbnailCache
	var cleanup usecases.CleanupService
	if rdb != nil {
		defer rdb.Close()
		thumbCache = cache.NewRedisThumbnailCache(rdb, consts.ThumbnailCachePrefix)
		cleanup = usecases.NewCleanupService(queue.NewRedisCleanupQueue(rdb, consts.CleanupQueueKey), blobStore, cfg.Cleanup)
	}

	vimeoClient := vimeo.NewClient(cfg.Vimeo.APIBaseURL, cfg.VimeoToken, time.Duration(cfg.Vimeo.TimeoutSeconds)*time.Second)
	vimeoService := usecases.NewVimeoService(vimeoClient, thumbCache, time.Duration(cfg.Redis.ThumbnailTTLSeconds)*time.Second, cfg.Vimeo.MaxPages)
	videoService := usecases.NewVideoService(infra_repo.NewVideoRepository(database), blobs, vimeoService, cleanup)

	app := routers.NewApp(cfg, routers.Dependencies{
		Videos: videoService,
		Vimeo:  vimeoService,
		Admin:  usecases.NewAdminService(cfg.AdminPassword),
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("server starting on %s (db=%s, blob=%s)", addr, cfg.Database.Driver, cfg.Blob.Driver)

	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutdown signal received, stopping server")

	ctxShut, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		logger.Errorf("server did not shut down cleanly: %v", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Infof("server stopped")
}
