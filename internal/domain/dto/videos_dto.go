package dto

import "time"

type VideoDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	VideoURL     *string   `json:"video_url"`
	BlobURL      *string   `json:"blob_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	FileName     *string   `json:"file_name"`
	FileSize     *int64    `json:"file_size"`
	Duration     *float64  `json:"duration"`
	SortOrder    *int      `json:"sort_order"`
	VimeoID      *string   `json:"vimeo_id"`
	VimeoHash    *string   `json:"vimeo_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateVideoInput is what the store needs to persist a new record. Empty
// optional strings mean "not set".
type CreateVideoInput struct {
	Title        string
	Description  string
	Category     string
	VideoURL     string
	BlobURL      string
	ThumbnailURL string
	FileName     string
	FileSize     *int64
	Duration     *float64
	VimeoID      string
	VimeoHash    string
}

// CreateFromBlobRequest is the JSON body of POST /videos/create-from-blob.
type CreateFromBlobRequest struct {
	BlobURL      string   `json:"blobUrl" validate:"omitempty,url"`
	VimeoID      string   `json:"vimeo_id" validate:"omitempty,max=500"`
	VimeoHash    string   `json:"vimeo_hash" validate:"omitempty,alphanum,max=50"`
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description"`
	Category     string   `json:"category" validate:"max=100"`
	VideoURL     string   `json:"video_url" validate:"omitempty,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"omitempty,url"`
	FileName     string   `json:"file_name" validate:"max=500"`
	FileSize     *int64   `json:"file_size" validate:"omitempty,gte=0"`
	Duration     *float64 `json:"duration" validate:"omitempty,gte=0"`
}

// UpdateVideoRequest is the JSON body of PATCH /videos/:id. Nil fields are
// left untouched; empty optional strings clear the column.
type UpdateVideoRequest struct {
	Title        *string  `json:"title" validate:"omitempty,max=255"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category" validate:"omitempty,max=100"`
	ThumbnailURL *string  `json:"thumbnail_url" validate:"omitempty,url"`
	VideoURL     *string  `json:"video_url" validate:"omitempty,url"`
	Duration     *float64 `json:"duration" validate:"omitempty,gte=0"`
	VimeoID      *string  `json:"vimeo_id" validate:"omitempty,max=500"`
	VimeoHash    *string  `json:"vimeo_hash" validate:"omitempty,alphanum,max=50"`
}

// UploadVideoForm holds the text fields of the multipart POST /videos.
type UploadVideoForm struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description"`
	Category    string `form:"category" validate:"max=100"`
}

type ReorderRequest struct {
	VideoIDs []uint `json:"videoIds" validate:"required,dive,gt=0"`
}

type VideoListResponse struct {
	Videos []VideoDTO `json:"videos"`
}

type VideoResponse struct {
	Video VideoDTO `json:"video"`
}

type ThumbnailResponse struct {
	ThumbnailURL string   `json:"thumbnailUrl"`
	Video        VideoDTO `json:"video"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error          string `json:"error"`
	Message        string `json:"message"`
	Hint           string `json:"hint,omitempty"`
	Details        string `json:"details,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}
