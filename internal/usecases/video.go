package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/mapper"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/vimeo"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/file"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/helper"
)

type VideoService interface {
	List(ctx context.Context, category *string, includeIntro bool) ([]dto.VideoDTO, error)
	Get(ctx context.Context, id uint) (*dto.VideoDTO, error)
	Create(ctx context.Context, in dto.CreateVideoInput) (*dto.VideoDTO, error)
	CreateFromUpload(ctx context.Context, form dto.UploadVideoForm, in FileInput) (*dto.VideoDTO, error)
	CreateFromBlob(ctx context.Context, req dto.CreateFromBlobRequest) (*dto.VideoDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateVideoRequest) (*dto.VideoDTO, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Reorder(ctx context.Context, ids []uint) error
	AttachThumbnail(ctx context.Context, id uint, in FileInput) (string, *dto.VideoDTO, error)
}

// ThumbnailLookup resolves the provider thumbnail of a Vimeo video.
type ThumbnailLookup interface {
	LookupThumbnail(ctx context.Context, id, hash string) (string, error)
}

type videoService struct {
	repo       repositories.VideoRepository
	blobs      BlobGateway
	thumbnails ThumbnailLookup
	cleanup    CleanupService
}

// NewVideoService wires the catalog. thumbnails and cleanup may be nil.
func NewVideoService(
	repo repositories.VideoRepository,
	blobs BlobGateway,
	thumbnails ThumbnailLookup,
	cleanup CleanupService,
) VideoService {
	return &videoService{
		repo:       repo,
		blobs:      blobs,
		thumbnails: thumbnails,
		cleanup:    cleanup,
	}
}

func (s *videoService) List(ctx context.Context, category *string, includeIntro bool) ([]dto.VideoDTO, error) {
	videos, err := s.repo.List(ctx, repositories.ListVideosFilter{
		Category:     category,
		IncludeIntro: includeIntro,
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return mapper.VideosToDTO(videos), nil
}

func (s *videoService) Get(ctx context.Context, id uint) (*dto.VideoDTO, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	out := mapper.VideoToDTO(video)
	return &out, nil
}

func (s *videoService) Create(ctx context.Context, in dto.CreateVideoInput) (*dto.VideoDTO, error) {
	if err := s.prepareCreate(ctx, &in); err != nil {
		return nil, err
	}

	video := mapper.CreateInputToEntity(in)
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, mapRepoErr(err)
	}
	logger.Infof("created video %d (%q)", video.ID, video.Title)

	out := mapper.VideoToDTO(video)
	return &out, nil
}

// CreateFromUpload validates the form before the file is sent to the blob
// store, and removes the blob again if the row cannot be written.
func (s *videoService) CreateFromUpload(ctx context.Context, form dto.UploadVideoForm, in FileInput) (*dto.VideoDTO, error) {
	form.Title = strings.TrimSpace(form.Title)
	if err := helper.ValidateStruct(form); err != nil {
		return nil, err
	}
	if in.Body == nil || in.Name == "" {
		return nil, apperrors.ErrValidation("video file is required")
	}
	contentType := resolveContentType(in.ContentType, in.Name)
	if !strings.HasPrefix(contentType, "video/") && !file.IsVideoFile(in.Name) {
		return nil, apperrors.ErrValidation("uploaded file is not a video")
	}
	if err := s.checkIntro(ctx, in.Name); err != nil {
		return nil, err
	}

	in.ContentType = contentType
	url, err := s.blobs.Upload(ctx, in, constants.FolderVideos)
	if err != nil {
		return nil, err
	}

	size := in.Size
	video, err := s.Create(ctx, dto.CreateVideoInput{
		Title:       form.Title,
		Description: strings.TrimSpace(form.Description),
		Category:    strings.TrimSpace(form.Category),
		VideoURL:    url,
		BlobURL:     url,
		FileName:    in.Name,
		FileSize:    &size,
	})
	if err != nil {
		s.discardBlob(ctx, url)
		return nil, err
	}
	return video, nil
}

func (s *videoService) CreateFromBlob(ctx context.Context, req dto.CreateFromBlobRequest) (*dto.VideoDTO, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	in := dto.CreateVideoInput{
		Title:        req.Title,
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		VideoURL:     strings.TrimSpace(req.VideoURL),
		BlobURL:      strings.TrimSpace(req.BlobURL),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		FileName:     strings.TrimSpace(req.FileName),
		FileSize:     req.FileSize,
		Duration:     req.Duration,
	}
	if in.VideoURL == "" {
		in.VideoURL = in.BlobURL
	}

	if raw := strings.TrimSpace(req.VimeoID); raw != "" {
		ref := vimeo.ResolveID(raw)
		in.VimeoID = ref.ID
		in.VimeoHash = strings.TrimSpace(req.VimeoHash)
		if in.VimeoHash == "" {
			in.VimeoHash = ref.HashValue()
		}
	}

	// reject before calling the provider
	if err := s.prepareCreate(ctx, &in); err != nil {
		return nil, err
	}
	if in.VimeoID != "" && in.ThumbnailURL == "" && s.thumbnails != nil {
		link, err := s.thumbnails.LookupThumbnail(ctx, in.VimeoID, in.VimeoHash)
		if err != nil {
			logger.Debugf("no vimeo thumbnail for %s: %v", in.VimeoID, err)
		}
		in.ThumbnailURL = link
	}

	return s.Create(ctx, in)
}

func (s *videoService) Update(ctx context.Context, id uint, req dto.UpdateVideoRequest) (*dto.VideoDTO, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.ErrValidation("title cannot be blank")
		}
		updates["title"] = title
	}
	setOptional(updates, "description", req.Description)
	setOptional(updates, "category", req.Category)
	setOptional(updates, "thumbnail_url", req.ThumbnailURL)
	setOptional(updates, "video_url", req.VideoURL)
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.VimeoID != nil {
		raw := strings.TrimSpace(*req.VimeoID)
		if raw == "" {
			updates["vimeo_id"] = nil
		} else {
			ref := vimeo.ResolveID(raw)
			if err := checkVimeoRef(ref.ID, ref.HashValue()); err != nil {
				return nil, err
			}
			updates["vimeo_id"] = ref.ID
			if ref.Hash != nil && req.VimeoHash == nil {
				updates["vimeo_hash"] = *ref.Hash
			}
		}
	}
	setOptional(updates, "vimeo_hash", req.VimeoHash)

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, mapRepoErr(err)
	}
	return s.Get(ctx, id)
}

// Delete reports false when there was nothing to delete. Blob removal is
// best effort and never fails the delete.
func (s *videoService) Delete(ctx context.Context, id uint) (bool, error) {
	video, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrVideoNotFound) {
		return false, nil
	}
	if err != nil {
		return false, mapRepoErr(err)
	}

	seen := map[string]bool{}
	for _, u := range []*string{video.BlobURL, video.VideoURL, video.ThumbnailURL} {
		if u == nil || seen[*u] || !s.blobs.Owns(*u) {
			continue
		}
		seen[*u] = true
		s.discardBlob(ctx, *u)
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, mapRepoErr(err)
	}
	if removed {
		logger.Infof("deleted video %d", id)
	}
	return removed, nil
}

// Reorder writes sort_order one row at a time. It is not atomic: on error,
// rows before the failing one keep their new position. Unknown ids are
// skipped.
func (s *videoService) Reorder(ctx context.Context, ids []uint) error {
	if ids == nil {
		return apperrors.ErrValidation("videoIds must be an array of video ids")
	}
	for position, id := range ids {
		if id == 0 {
			return apperrors.ErrValidation("videoIds must contain positive ids")
		}
		if err := s.repo.SetSortOrder(ctx, id, position); err != nil {
			logger.Errorf("reorder stopped at video %d (position %d): %v", id, position, err)
			return mapRepoErr(err)
		}
	}
	logger.Infof("reordered %d videos", len(ids))
	return nil
}

func (s *videoService) AttachThumbnail(ctx context.Context, id uint, in FileInput) (string, *dto.VideoDTO, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", nil, mapRepoErr(err)
	}

	url, err := s.blobs.UploadThumbnail(ctx, in)
	if err != nil {
		return "", nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"thumbnail_url": url}); err != nil {
		s.discardBlob(ctx, url)
		return "", nil, mapRepoErr(err)
	}
	if old := video.ThumbnailURL; old != nil && *old != url && s.blobs.Owns(*old) {
		s.discardBlob(ctx, *old)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return url, updated, nil
}

// prepareCreate trims and checks a new record in place. It runs before any
// blob write or provider call, and again inside Create.
func (s *videoService) prepareCreate(ctx context.Context, in *dto.CreateVideoInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.BlobURL = strings.TrimSpace(in.BlobURL)
	in.VimeoID = strings.TrimSpace(in.VimeoID)
	in.FileName = file.BaseName(in.FileName)

	if in.Title == "" {
		return apperrors.ErrValidation("title is required")
	}
	if in.BlobURL == "" && in.VimeoID == "" {
		return apperrors.ErrValidation("either blobUrl or vimeo_id is required")
	}
	if in.VimeoID != "" {
		if err := checkVimeoRef(in.VimeoID, in.VimeoHash); err != nil {
			return err
		}
	}
	return s.checkIntro(ctx, in.FileName)
}

// checkVimeoRef bounds a resolved id and hash to their column widths.
func checkVimeoRef(id, hash string) error {
	if len(id) > constants.MaxVimeoRefLength {
		return apperrors.ErrValidation(fmt.Sprintf("vimeo_id must resolve to at most %d characters", constants.MaxVimeoRefLength))
	}
	if len(hash) > constants.MaxVimeoRefLength {
		return apperrors.ErrValidation(fmt.Sprintf("vimeo_hash must be at most %d characters", constants.MaxVimeoRefLength))
	}
	return nil
}

func (s *videoService) checkIntro(ctx context.Context, fileName string) error {
	if !file.IsIntroFile(fileName) {
		return nil
	}
	count, err := s.repo.CountIntro(ctx)
	if err != nil {
		return mapRepoErr(err)
	}
	if count > 0 {
		return apperrors.ErrValidation("an intro video already exists; delete it before adding another")
	}
	return nil
}

func (s *videoService) discardBlob(ctx context.Context, url string) {
	err := s.blobs.Delete(ctx, url)
	if err == nil {
		return
	}
	logger.Warnf("failed to delete blob %s: %v", url, err)
	if s.cleanup == nil {
		return
	}
	if qerr := s.cleanup.Enqueue(ctx, url, err); qerr != nil {
		logger.Errorf("failed to enqueue blob cleanup for %s: %v", url, qerr)
	}
}

func setOptional(updates map[string]interface{}, column string, value *string) {
	if value == nil {
		return
	}
	if v := strings.TrimSpace(*value); v != "" {
		updates[column] = v
	} else {
		updates[column] = nil
	}
}

func mapRepoErr(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrVideoNotFound):
		return apperrors.ErrNotFound("Video not found")
	case errors.Is(err, repositories.ErrSchemaOutdated):
		return apperrors.ErrSchema(err)
	default:
		return apperrors.ErrInternal(err)
	}
}
