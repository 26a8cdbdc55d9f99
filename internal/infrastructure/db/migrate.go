package db

import (
	"fmt"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/entities"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// AutoMigrate lets gorm create the tables. Used for sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Video{},
	)
}

// Migrate applies schema changes for the configured driver: goose Go
// migrations (registered by importing the migrations package) for postgres,
// gorm AutoMigrate for sqlite.
func Migrate(database *gorm.DB, cfg config.DatabaseConfig) error {
	if cfg.Driver == "sqlite" {
		return AutoMigrate(database)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
