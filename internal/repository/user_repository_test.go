package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsline/internal/model"
)

func TestUserRepository_CreateWithToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "hashed"}
	expiresAt := time.Now().Add(7 * 24 * time.Hour)

	token, err := repo.CreateWithToken(ctx, user, "tok-1", expiresAt)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, "tok-1", token.Token)
	assert.WithinDuration(t, expiresAt, token.ExpiresAt, time.Second)

	found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserRepository_CreateWithToken_DuplicateLeavesNoRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &model.User{Username: "bob", PasswordHash: "hashed"}
	_, err := repo.CreateWithToken(ctx, first, "tok-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	second := &model.User{Username: "bob", PasswordHash: "other"}
	_, err = repo.CreateWithToken(ctx, second, "tok-2", time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var userCount, tokenCount int64
	require.NoError(t, db.Model(&model.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&model.UserToken{}).Count(&tokenCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), tokenCount)
}

func TestUserRepository_GetByUsername_Absent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}
