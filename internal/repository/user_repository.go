package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"newsline/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// CreateWithToken inserts the user and its first token row in one
// transaction, so a failed token insert never leaves a tokenless user
// behind. The unique index on username is the authoritative guard; a
// racing registration surfaces as ErrConflict here.
func (r *UserRepository) CreateWithToken(ctx context.Context, user *model.User, token string, expiresAt time.Time) (*model.UserToken, error) {
	userToken := &model.UserToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isDuplicateErr(err) {
				return fmt.Errorf("create user %q: %w", user.Username, ErrConflict)
			}
			return fmt.Errorf("create user failed: %w", err)
		}

		userToken.UserID = user.ID
		if err := tx.Create(userToken).Error; err != nil {
			return fmt.Errorf("create user token failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userToken, nil
}
