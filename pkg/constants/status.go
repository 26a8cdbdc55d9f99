package constants

const (
	StatusOK = "ok"

	// AdminCookieValue is the value of the admin cookie once login succeeded.
	AdminCookieValue = "1"

	// IntroFileStem marks the intro record: a file_name whose stem equals it.
	IntroFileStem = "intro"

	// MaxVimeoRefLength is the width of the vimeo_id and vimeo_hash columns.
	MaxVimeoRefLength = 50

	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"

	CleanupQueueKey      = "blob_cleanup_queue"
	ThumbnailCachePrefix = "vimeo:thumb:"
)
