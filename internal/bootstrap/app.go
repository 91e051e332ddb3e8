package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"newsline/internal/cache"
	"newsline/internal/config"
	"newsline/internal/model"
	mysqlClient "newsline/internal/platform/mysql"
	rabbitmqClient "newsline/internal/platform/rabbitmq"
	redisClient "newsline/internal/platform/redis"
	"newsline/internal/repository"
	"newsline/internal/worker"
)

type App struct {
	Config          *config.Config
	MySQL           *gorm.DB
	Redis           *redis.Client
	MQConn          *amqp.Connection
	ViewEventWorker *worker.ViewEventWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.Category{},
		&model.News{},
		&model.User{},
		&model.UserToken{},
		&model.ViewEvent{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	viewEventRepo := repository.NewViewEventRepository(mysqlDB)
	hotBoard := cache.NewHotNewsBoard(redisCli, cfg.Hot.LeaderboardKey, cfg.Hot.MaxEntries)
	viewEventWorker := worker.NewViewEventWorker(mqConn, viewEventRepo, hotBoard, cfg.RabbitMQ.ViewEventQueue)
	if err := viewEventWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start view event worker failed: %w", err)
	}

	return &App{
		Config:          cfg,
		MySQL:           mysqlDB,
		Redis:           redisCli,
		MQConn:          mqConn,
		ViewEventWorker: viewEventWorker,
		StartedAt:       time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ViewEventWorker != nil {
		a.ViewEventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
