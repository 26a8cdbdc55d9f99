package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/entities"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATE for undefined_column
const pgUndefinedColumn = "42703"

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

var _ repositories.VideoRepository = (*VideoRepository)(nil)

func (r *VideoRepository) List(ctx context.Context, filter repositories.ListVideosFilter) ([]entities.Video, error) {
	q := r.db.WithContext(ctx).Model(&entities.Video{})
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if !filter.IncludeIntro {
		q = q.Where("(file_name IS NULL OR NOT "+introMatch+")", introArgs()...)
	}

	var videos []entities.Video
	err := q.
		Order("CASE WHEN sort_order IS NULL THEN 1 ELSE 0 END").
		Order("sort_order ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&videos).Error
	if err != nil {
		return nil, classify(err)
	}
	return videos, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id uint) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrVideoNotFound
		}
		return nil, classify(err)
	}
	return &video, nil
}

func (r *VideoRepository) Create(ctx context.Context, video *entities.Video) error {
	return classify(r.db.WithContext(ctx).Create(video).Error)
}

func (r *VideoRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&entities.Video{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.Video{}, "id = ?", id)
	if res.Error != nil {
		return false, classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *VideoRepository) SetSortOrder(ctx context.Context, id uint, position int) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Video{}).
		Where("id = ?", id).
		UpdateColumn("sort_order", position).Error
	return classify(err)
}

func (r *VideoRepository) CountIntro(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Video{}).
		Where(introMatch, introArgs()...).
		Count(&count).Error
	return count, classify(err)
}

// introMatch selects rows whose file_name is the intro file, bare or as the
// last segment of a '/' separated path. Kept in step with file.IsIntroFile;
// the service stores base names, the path forms cover older rows.
const introMatch = "(LOWER(file_name) = ? OR LOWER(file_name) LIKE ? OR LOWER(file_name) LIKE ? OR LOWER(file_name) LIKE ?)"

func introArgs() []interface{} {
	stem := constants.IntroFileStem
	return []interface{}{stem, stem + ".%", "%/" + stem, "%/" + stem + ".%"}
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if isMissingColumn(err) {
		return fmt.Errorf("%w: %v", repositories.ErrSchemaOutdated, err)
	}
	return err
}

func isMissingColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedColumn
	}
	// sqlite reports "no such column: x"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such column") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "does not exist"))
}
