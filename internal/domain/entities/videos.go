package entities

import "time"

// Video is a catalog row. Optional columns are pointers so that "not set"
// is stored as NULL rather than an empty value.
type Video struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  *string   `gorm:"type:text"`
	Category     *string   `gorm:"type:varchar(100);index"`
	VideoURL     *string   `gorm:"type:text"`
	BlobURL      *string   `gorm:"type:text"`
	ThumbnailURL *string   `gorm:"type:text"`
	FileName     *string   `gorm:"type:varchar(500)"`
	FileSize     *int64
	Duration     *float64
	SortOrder    *int      `gorm:"index"`
	VimeoID      *string   `gorm:"type:varchar(50);index"`
	VimeoHash    *string   `gorm:"type:varchar(50)"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (Video) TableName() string {
	return "videos"
}
