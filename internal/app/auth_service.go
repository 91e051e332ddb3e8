package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsline/internal/model"
	"newsline/internal/repository"
)

var (
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
)

// bcrypt ignores input beyond 72 bytes, truncate explicitly
const maxPasswordBytes = 72

type AuthService struct {
	userRepo  *repository.UserRepository
	tokenRepo *repository.UserTokenRepository
	tokenTTL  time.Duration
}

type RegisterInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.UserTokenRepository, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokenTTL:  tokenTTL,
	}
}

// Register creates the user and its first token in one transaction.
// The username lookup is only a fast path; the unique index decides
// races and surfaces here as ErrUsernameExists.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	token, expiresAt := s.newToken()
	userToken, err := s.userRepo.CreateWithToken(ctx, user, token, expiresAt)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return &AuthResult{
		Token:     userToken.Token,
		ExpiresAt: userToken.ExpiresAt,
		User:      user,
	}, nil
}

// Login verifies credentials and rotates the user's token. The old
// token value stops working immediately since only one row is kept.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), truncatePassword(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	userToken, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     userToken.Token,
		ExpiresAt: userToken.ExpiresAt,
		User:      user,
	}, nil
}

// IssueToken mints a fresh opaque token for the user, overwriting any
// previous one.
func (s *AuthService) IssueToken(ctx context.Context, userID uint) (*model.UserToken, error) {
	token, expiresAt := s.newToken()
	return s.tokenRepo.Upsert(ctx, userID, token, expiresAt)
}

func (s *AuthService) newToken() (string, time.Time) {
	return uuid.NewString(), time.Now().Add(s.tokenTTL)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

func truncatePassword(password string) []byte {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return raw
}
