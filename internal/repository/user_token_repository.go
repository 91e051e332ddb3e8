package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"newsline/internal/model"
)

type UserTokenRepository struct {
	db *gorm.DB
}

func NewUserTokenRepository(db *gorm.DB) *UserTokenRepository {
	return &UserTokenRepository{db: db}
}

// Upsert rotates the user's token row in place, inserting one if the
// user has none yet. The check-then-write window is tolerated as
// last-writer-wins; the unique index on user_id keeps a racing insert
// from producing a second row, and that loser retries as an update.
func (r *UserTokenRepository) Upsert(ctx context.Context, userID uint, token string, expiresAt time.Time) (*model.UserToken, error) {
	var existing model.UserToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	switch {
	case err == nil:
		existing.Token = token
		existing.ExpiresAt = expiresAt
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("rotate user token failed: %w", err)
		}
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		created := model.UserToken{
			UserID:    userID,
			Token:     token,
			ExpiresAt: expiresAt,
		}
		if createErr := r.db.WithContext(ctx).Create(&created).Error; createErr != nil {
			if isDuplicateErr(createErr) {
				// lost the insert race, rotate the winner's row
				return r.updateExisting(ctx, userID, token, expiresAt)
			}
			return nil, fmt.Errorf("create user token failed: %w", createErr)
		}
		return &created, nil

	default:
		return nil, fmt.Errorf("query user token failed: %w", err)
	}
}

func (r *UserTokenRepository) updateExisting(ctx context.Context, userID uint, token string, expiresAt time.Time) (*model.UserToken, error) {
	var existing model.UserToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("query user token failed: %w", err)
	}
	existing.Token = token
	existing.ExpiresAt = expiresAt
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("rotate user token failed: %w", err)
	}
	return &existing, nil
}

func (r *UserTokenRepository) GetByUserID(ctx context.Context, userID uint) (*model.UserToken, error) {
	var token model.UserToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user token failed: %w", err)
	}
	return &token, nil
}
