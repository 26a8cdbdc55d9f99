package repositories

import (
	"context"
	"errors"
	"io"
)

// ErrStorageNotConfigured is returned by a BlobStore that has no usable
// credential or bucket at the time of the call.
var ErrStorageNotConfigured = errors.New("blob storage is not configured")

type BlobObject struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BlobStore is an object store that serves what it stores under public URLs.
type BlobStore interface {
	Put(ctx context.Context, obj BlobObject) (string, error)
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}
