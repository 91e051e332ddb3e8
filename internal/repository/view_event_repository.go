package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"newsline/internal/model"
)

type ViewEventRepository struct {
	db *gorm.DB
}

func NewViewEventRepository(db *gorm.DB) *ViewEventRepository {
	return &ViewEventRepository{db: db}
}

func (r *ViewEventRepository) Create(ctx context.Context, event *model.ViewEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create view event failed: %w", err)
	}
	return nil
}

func (r *ViewEventRepository) CountByNewsID(ctx context.Context, newsID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.ViewEvent{}).
		Where("news_id = ?", newsID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count view events failed: %w", err)
	}
	return total, nil
}
