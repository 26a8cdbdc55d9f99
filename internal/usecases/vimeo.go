package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/vimeo"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"
)

// VimeoAPI is the part of the Vimeo client the service needs.
type VimeoAPI interface {
	FetchByID(ctx context.Context, id, hash string) (*dto.VimeoVideo, bool, error)
	FetchPage(ctx context.Context, perPage, page int) (*dto.VimeoPage, error)
	FetchAll(ctx context.Context, perPage, maxPages int) (*dto.VimeoCollection, error)
	VerifyConnection(ctx context.Context) dto.VimeoVerifyResult
}

type VimeoService interface {
	Lookup(ctx context.Context, input string) (*dto.VimeoVideo, error)
	ListPage(ctx context.Context, perPage, page int) (*dto.VimeoPageResponse, error)
	ListAll(ctx context.Context, perPage int) (*dto.VimeoCollection, error)
	Verify(ctx context.Context) dto.VimeoVerifyResult
	Thumbnail(ctx context.Context, input string) (string, error)
	LookupThumbnail(ctx context.Context, id, hash string) (string, error)
}

type vimeoService struct {
	api      VimeoAPI
	cache    repositories.ThumbnailCache
	cacheTTL time.Duration
	maxPages int
}

// NewVimeoService builds the service. cache may be nil, in which case
// thumbnails are fetched on every call.
func NewVimeoService(api VimeoAPI, cache repositories.ThumbnailCache, cacheTTL time.Duration, maxPages int) VimeoService {
	return &vimeoService{
		api:      api,
		cache:    cache,
		cacheTTL: cacheTTL,
		maxPages: maxPages,
	}
}

func (s *vimeoService) Lookup(ctx context.Context, input string) (*dto.VimeoVideo, error) {
	ref := vimeo.ResolveID(input)
	if ref.ID == "" {
		return nil, apperrors.ErrValidation("vimeo id is required")
	}
	video, found, err := s.api.FetchByID(ctx, ref.ID, ref.HashValue())
	if err != nil {
		return nil, mapVimeoErr(err)
	}
	if !found {
		return nil, apperrors.ErrNotFound("Vimeo video not found")
	}
	return video, nil
}

func (s *vimeoService) ListPage(ctx context.Context, perPage, page int) (*dto.VimeoPageResponse, error) {
	p, err := s.api.FetchPage(ctx, perPage, page)
	if err != nil {
		return nil, mapVimeoErr(err)
	}
	return &dto.VimeoPageResponse{
		Videos:  p.Data,
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   p.Total,
		HasNext: p.HasNext(),
	}, nil
}

func (s *vimeoService) ListAll(ctx context.Context, perPage int) (*dto.VimeoCollection, error) {
	col, err := s.api.FetchAll(ctx, perPage, s.maxPages)
	if err != nil {
		return nil, mapVimeoErr(err)
	}
	if !col.Complete {
		logger.Warnf("vimeo listing incomplete: %d videos over %d pages (%s)", len(col.Videos), col.Pages, col.Warning)
	}
	return col, nil
}

func (s *vimeoService) Verify(ctx context.Context) dto.VimeoVerifyResult {
	return s.api.VerifyConnection(ctx)
}

// Thumbnail accepts anything ResolveID understands.
func (s *vimeoService) Thumbnail(ctx context.Context, input string) (string, error) {
	ref := vimeo.ResolveID(input)
	if ref.ID == "" {
		return "", apperrors.ErrValidation("vimeoId is required")
	}
	return s.LookupThumbnail(ctx, ref.ID, ref.HashValue())
}

func (s *vimeoService) LookupThumbnail(ctx context.Context, id, hash string) (string, error) {
	id = strings.TrimSpace(id)
	if s.cache != nil {
		if link, ok := s.cache.Get(ctx, id); ok {
			return link, nil
		}
	}

	video, found, err := s.api.FetchByID(ctx, id, hash)
	if err != nil {
		return "", mapVimeoErr(err)
	}
	if !found {
		return "", apperrors.ErrNotFound("Vimeo video not found")
	}
	link := vimeo.ExtractThumbnail(video)
	if link == "" {
		return "", apperrors.ErrNotFound("Vimeo video has no thumbnail")
	}

	if s.cache != nil && s.cacheTTL > 0 {
		s.cache.Set(ctx, id, link, s.cacheTTL)
	}
	return link, nil
}

func mapVimeoErr(err error) error {
	var authErr *vimeo.AuthError
	var provErr *vimeo.ProviderError
	switch {
	case errors.Is(err, vimeo.ErrMissingToken):
		appErr := apperrors.ErrVimeoTokenMissing()
		appErr.Err = err
		return appErr
	case errors.As(err, &authErr):
		return apperrors.ErrProviderAuth(err)
	case errors.As(err, &provErr):
		return apperrors.ErrProvider(provErr.StatusCode, err)
	default:
		return apperrors.ErrInternal(err)
	}
}
