package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newsline/internal/app"
	"newsline/internal/model"
	"newsline/internal/repository"
)

type handlerEnv struct {
	router       *gin.Engine
	db           *gorm.DB
	newsRepo     *repository.NewsRepository
	categoryRepo *repository.CategoryRepository
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.News{},
		&model.User{},
		&model.UserToken{},
	))

	categoryRepo := repository.NewCategoryRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewUserTokenRepository(db)

	newsService := app.NewNewsService(categoryRepo, newsRepo, nil, nil)
	authService := app.NewAuthService(userRepo, tokenRepo, 7*24*time.Hour)

	newsHandler := NewNewsHandler(newsService)
	userHandler := NewUserHandler(authService)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/news/categories", newsHandler.GetCategories)
	api.GET("/news/list", newsHandler.GetNewsList)
	api.GET("/news/detail", newsHandler.GetNewsDetail)
	api.GET("/news/hot", newsHandler.GetHotNews)
	api.POST("/user/register", userHandler.Register)
	api.POST("/user/login", userHandler.Login)

	return &handlerEnv{
		router:       router,
		db:           db,
		newsRepo:     newsRepo,
		categoryRepo: categoryRepo,
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
