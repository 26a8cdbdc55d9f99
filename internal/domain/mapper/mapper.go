package mapper

import (
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/entities"
)

func VideoToDTO(v *entities.Video) dto.VideoDTO {
	return dto.VideoDTO{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		VideoURL:     v.VideoURL,
		BlobURL:      v.BlobURL,
		ThumbnailURL: v.ThumbnailURL,
		FileName:     v.FileName,
		FileSize:     v.FileSize,
		Duration:     v.Duration,
		SortOrder:    v.SortOrder,
		VimeoID:      v.VimeoID,
		VimeoHash:    v.VimeoHash,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func VideosToDTO(videos []entities.Video) []dto.VideoDTO {
	out := make([]dto.VideoDTO, 0, len(videos))
	for i := range videos {
		out = append(out, VideoToDTO(&videos[i]))
	}
	return out
}

// CreateInputToEntity turns empty optional strings into NULL columns.
func CreateInputToEntity(in dto.CreateVideoInput) *entities.Video {
	return &entities.Video{
		Title:        in.Title,
		Description:  OptionalString(in.Description),
		Category:     OptionalString(in.Category),
		VideoURL:     OptionalString(in.VideoURL),
		BlobURL:      OptionalString(in.BlobURL),
		ThumbnailURL: OptionalString(in.ThumbnailURL),
		FileName:     OptionalString(in.FileName),
		FileSize:     in.FileSize,
		Duration:     in.Duration,
		VimeoID:      OptionalString(in.VimeoID),
		VimeoHash:    OptionalString(in.VimeoHash),
	}
}

func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
