package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"newsline/internal/model"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) ListByCategory(ctx context.Context, categoryID uint, skip, limit int) ([]model.News, error) {
	var news []model.News
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&news).Error
	if err != nil {
		return nil, fmt.Errorf("list news by category failed: %w", err)
	}
	return news, nil
}

func (r *NewsRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.News{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count news by category failed: %w", err)
	}
	return total, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id uint) (*model.News, error) {
	var news model.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query news by id failed: %w", err)
	}
	return &news, nil
}

// IncrementViews bumps the counter with a single conditional UPDATE so
// concurrent reads of the same article never lose increments. Returns
// false when no row matched, which callers treat as the article being
// gone.
func (r *NewsRepository) IncrementViews(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.News{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return false, fmt.Errorf("increment news views failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListRelated returns the display projection of articles in the same
// category, excluding the one being read. Ordering is views desc, then
// publish_time desc, with id desc as the stable tie-break.
func (r *NewsRepository) ListRelated(ctx context.Context, excludeID, categoryID uint, limit int) ([]model.NewsSummary, error) {
	var news []model.News
	err := r.db.WithContext(ctx).
		Where("id <> ? AND category_id = ?", excludeID, categoryID).
		Order("views DESC").
		Order("publish_time DESC").
		Order("id DESC").
		Limit(limit).
		Find(&news).Error
	if err != nil {
		return nil, fmt.Errorf("list related news failed: %w", err)
	}

	summaries := make([]model.NewsSummary, 0, len(news))
	for i := range news {
		summaries = append(summaries, news[i].Summary())
	}
	return summaries, nil
}

// ListByIDs fetches summaries for the given ids, preserving the order
// of the id slice. Ids with no matching row are skipped.
func (r *NewsRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.NewsSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var news []model.News
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&news).Error; err != nil {
		return nil, fmt.Errorf("list news by ids failed: %w", err)
	}

	byID := make(map[uint]*model.News, len(news))
	for i := range news {
		byID[news[i].ID] = &news[i]
	}

	summaries := make([]model.NewsSummary, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			summaries = append(summaries, n.Summary())
		}
	}
	return summaries, nil
}

func (r *NewsRepository) Create(ctx context.Context, news *model.News) error {
	if err := r.db.WithContext(ctx).Create(news).Error; err != nil {
		return fmt.Errorf("create news failed: %w", err)
	}
	return nil
}
