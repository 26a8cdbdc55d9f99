package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/processor"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/file"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/helper"
)

// FileInput is an uploaded file as received by the delivery layer.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

var thumbnailTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type BlobGateway interface {
	Upload(ctx context.Context, in FileInput, folder string) (string, error)
	UploadThumbnail(ctx context.Context, in FileInput) (string, error)
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}

type blobGateway struct {
	store repositories.BlobStore
	thumb config.ThumbnailConfig
}

func NewBlobGateway(store repositories.BlobStore, thumb config.ThumbnailConfig) BlobGateway {
	return &blobGateway{
		store: store,
		thumb: thumb,
	}
}

func (g *blobGateway) Upload(ctx context.Context, in FileInput, folder string) (string, error) {
	contentType := resolveContentType(in.ContentType, in.Name)
	url, err := g.store.Put(ctx, repositories.BlobObject{
		Key:         file.MakeKey(folder, in.Name),
		ContentType: contentType,
		Size:        in.Size,
		Body:        in.Body,
	})
	if err != nil {
		return "", mapBlobErr(err)
	}
	logger.Infof("stored blob %s (%s, %d bytes)", url, contentType, in.Size)
	return url, nil
}

// UploadThumbnail rejects oversized or non-image input before anything is
// written to the store.
func (g *blobGateway) UploadThumbnail(ctx context.Context, in FileInput) (string, error) {
	if in.Size > g.thumb.MaxBytes {
		return "", thumbnailTooLarge(g.thumb.MaxBytes)
	}
	contentType, err := ThumbnailContentType(in.ContentType, in.Name)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, g.thumb.MaxBytes+1))
	if err != nil {
		return "", apperrors.ErrInternal(fmt.Errorf("read thumbnail: %w", err))
	}
	if int64(len(data)) > g.thumb.MaxBytes {
		return "", thumbnailTooLarge(g.thumb.MaxBytes)
	}
	if len(data) == 0 {
		return "", apperrors.ErrValidation("thumbnail file is empty")
	}

	img, err := processor.NormalizeThumbnail(data, contentType, processor.ResizeOption{
		Width:   g.thumb.MaxWidth,
		Height:  g.thumb.MaxHeight,
		Quality: g.thumb.Quality,
	})
	if err != nil {
		if errors.Is(err, processor.ErrInvalidImage) {
			return "", apperrors.ErrValidation("thumbnail is not a valid image")
		}
		return "", apperrors.ErrInternal(err)
	}

	name := in.Name
	if img.ContentType != contentType {
		name = strings.TrimSuffix(name, extOf(name)) + ".jpg"
	}
	if img.Resized {
		logger.Debugf("thumbnail %s resized to %dx%d", in.Name, img.Width, img.Height)
	}

	return g.Upload(ctx, FileInput{
		Name:        name,
		ContentType: img.ContentType,
		Size:        int64(len(img.Data)),
		Body:        bytes.NewReader(img.Data),
	}, constants.FolderThumbnails)
}

func (g *blobGateway) Delete(ctx context.Context, url string) error {
	if url == "" || !g.store.Owns(url) {
		return nil
	}
	if err := g.store.Delete(ctx, url); err != nil {
		return mapBlobErr(err)
	}
	return nil
}

func (g *blobGateway) Owns(url string) bool {
	return url != "" && g.store.Owns(url)
}

// ThumbnailContentType takes the type from the part header and falls back
// to the file extension when the header is missing or generic.
func ThumbnailContentType(headerType, name string) (string, error) {
	ct := normalizeContentType(headerType)
	if thumbnailTypes[ct] {
		return ct, nil
	}
	if (ct == "" || ct == "application/octet-stream") && file.IsImageFile(name) {
		if byExt := helper.GetMimeTypeFromExtension(name); thumbnailTypes[byExt] {
			return byExt, nil
		}
	}
	if ct == "" {
		ct = "unknown"
	}
	return "", apperrors.ErrValidation(fmt.Sprintf(
		"thumbnail must be a JPEG, PNG, GIF or WebP image (got %s)", ct))
}

func resolveContentType(headerType, name string) string {
	ct := normalizeContentType(headerType)
	if ct == "" || ct == "application/octet-stream" {
		return helper.GetMimeTypeFromExtension(name)
	}
	return ct
}

func normalizeContentType(ct string) string {
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = ct
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "image/jpg" {
		return "image/jpeg"
	}
	return mediaType
}

func thumbnailTooLarge(limit int64) error {
	return apperrors.ErrValidation(fmt.Sprintf("thumbnail exceeds the %d MiB size limit", limit/(1024*1024)))
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i > strings.LastIndexAny(name, "/\\") {
		return name[i:]
	}
	return ""
}

func mapBlobErr(err error) error {
	if errors.Is(err, repositories.ErrStorageNotConfigured) {
		appErr := apperrors.ErrBlobCredentialMissing()
		appErr.Err = err
		return appErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.ErrInternal(fmt.Errorf("blob store: %w", err))
}
