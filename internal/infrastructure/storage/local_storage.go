package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/fileutils"
)

// LocalStorage keeps blobs on disk; the HTTP server serves BasePath under BaseURL.
type LocalStorage struct {
	BasePath string
	BaseURL  string
}

func NewLocalStorage(basePath, baseURL string) *LocalStorage {
	return &LocalStorage{BasePath: basePath, BaseURL: strings.TrimRight(baseURL, "/")}
}

var _ repositories.BlobStore = (*LocalStorage)(nil)

func (l *LocalStorage) Put(ctx context.Context, obj repositories.BlobObject) (string, error) {
	fullPath, err := l.pathFor(obj.Key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fileutils.WriteFileAtomic(fullPath, obj.Body); err != nil {
		return "", err
	}
	return l.BaseURL + "/" + obj.Key, nil
}

func (l *LocalStorage) Delete(_ context.Context, url string) error {
	if !l.Owns(url) {
		return nil
	}
	fullPath, err := l.pathFor(strings.TrimPrefix(url, l.BaseURL+"/"))
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}

func (l *LocalStorage) Owns(url string) bool {
	return strings.HasPrefix(url, l.BaseURL+"/")
}

func (l *LocalStorage) pathFor(key string) (string, error) {
	fullPath := filepath.Join(l.BasePath, filepath.FromSlash(key))
	if !fileutils.Within(l.BasePath, fullPath) {
		return "", fmt.Errorf("blob key %q escapes storage root", key)
	}
	return fullPath, nil
}
