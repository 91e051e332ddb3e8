package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"newsline/internal/model"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns categories windowed by skip/limit. Ordering is by the
// surrogate key, which matches insertion order without depending on
// storage iteration quirks.
func (r *CategoryRepository) List(ctx context.Context, skip, limit int) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("create category %q: %w", category.Name, ErrConflict)
		}
		return fmt.Errorf("create category failed: %w", err)
	}
	return nil
}
