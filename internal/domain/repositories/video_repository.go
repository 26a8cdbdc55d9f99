package repositories

import (
	"context"
	"errors"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/entities"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	// ErrSchemaOutdated wraps driver errors caused by a missing column.
	ErrSchemaOutdated = errors.New("database schema is outdated")
)

type ListVideosFilter struct {
	Category     *string
	IncludeIntro bool
}

// VideoRepository is the persistence port of the catalog. Updates receives
// column names as keys.
type VideoRepository interface {
	List(ctx context.Context, filter ListVideosFilter) ([]entities.Video, error)
	GetByID(ctx context.Context, id uint) (*entities.Video, error)
	Create(ctx context.Context, video *entities.Video) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
	SetSortOrder(ctx context.Context, id uint, position int) error
	CountIntro(ctx context.Context) (int64, error)
}
