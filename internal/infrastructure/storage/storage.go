package storage

import (
	"fmt"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
)

// New picks the blob backend named by cfg.Blob.Driver.
func New(cfg *config.Config) (repositories.BlobStore, error) {
	switch cfg.Blob.Driver {
	case "s3":
		return NewS3Storage(cfg.Blob, cfg.BlobCredential), nil
	case "local":
		return NewLocalStorage(cfg.Blob.LocalDir, cfg.Blob.LocalBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported blob driver %q", cfg.Blob.Driver)
	}
}
