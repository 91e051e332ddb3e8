package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "newsline/internal/app"
	"newsline/internal/bootstrap"
	"newsline/internal/cache"
	"newsline/internal/platform/rabbitmq"
	"newsline/internal/repository"
	"newsline/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	categoryRepo := repository.NewCategoryRepository(app.MySQL)
	newsRepo := repository.NewNewsRepository(app.MySQL)
	userRepo := repository.NewUserRepository(app.MySQL)
	tokenRepo := repository.NewUserTokenRepository(app.MySQL)

	hotBoard := cache.NewHotNewsBoard(app.Redis, app.Config.Hot.LeaderboardKey, app.Config.Hot.MaxEntries)
	publisher := rabbitmq.NewViewEventPublisher(app.MQConn, app.Config.RabbitMQ.ViewEventQueue)

	newsService := appsvc.NewNewsService(categoryRepo, newsRepo, publisher, hotBoard)
	authService := appsvc.NewAuthService(
		userRepo,
		tokenRepo,
		time.Duration(app.Config.Auth.TokenTTLDays)*24*time.Hour,
	)
	newsHandler := handler.NewNewsHandler(newsService)
	userHandler := handler.NewUserHandler(authService)

	api := router.Group("/api")
	newsGroup := api.Group("/news")
	newsGroup.GET("/categories", newsHandler.GetCategories)
	newsGroup.GET("/list", newsHandler.GetNewsList)
	newsGroup.GET("/detail", newsHandler.GetNewsDetail)
	newsGroup.GET("/hot", newsHandler.GetHotNews)

	userGroup := api.Group("/user")
	userGroup.POST("/register", userHandler.Register)
	userGroup.POST("/login", userHandler.Login)

	return router
}
