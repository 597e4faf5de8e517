package app

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/MAKHFIRAT2408/food/configs"
	"github.com/MAKHFIRAT2408/food/internal/adapter/cache"
	httpadapter "github.com/MAKHFIRAT2408/food/internal/adapter/http"
	"github.com/MAKHFIRAT2408/food/internal/adapter/http/middleware"
	"github.com/MAKHFIRAT2408/food/internal/adapter/kafka"
	"github.com/MAKHFIRAT2408/food/internal/adapter/queue"
	"github.com/MAKHFIRAT2408/food/internal/adapter/repo"
	"github.com/MAKHFIRAT2408/food/internal/logging"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	l := logging.Init(cfg.App.Name, cfg.App.LogFile, parseLevel(cfg.App.LogLevel))
	l.Info("delivery-api: starting up")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := repo.EnsureSchema(ctx, db); err != nil {
		return nil, nil, err
	}

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// brokers are optional in dev: without them the service runs DB-only
	var dispatch usecase.DispatchQueue
	var rabbitConn *amqp091.Connection
	if cfg.Rabbit.URL != "" {
		conn, err := amqp091.Dial(cfg.Rabbit.URL)
		if err != nil {
			l.Warn("rabbitmq unavailable, dispatch disabled", "err", err)
		} else {
			rabbitConn = conn
			ch, err := conn.Channel()
			if err != nil {
				return nil, nil, err
			}
			producer, err := queue.NewRabbitProducer(ch)
			if err != nil {
				return nil, nil, err
			}
			dispatch = producer
		}
	}

	var events usecase.EventPublisher
	var kafkaProducer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		sp, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			l.Warn("kafka unavailable, status events disabled", "err", err)
		} else {
			kafkaProducer = kafka.NewProducer(sp, cfg.Kafka.TopicStatusEvents)
			events = kafkaProducer
		}
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	catalogRepo := repo.NewMySQLCatalogRepo(db)
	users := repo.NewMySQLUserDirectory(db)
	dishCache := cache.NewRedisDishCache(rdb, cfg.Cache.DishTTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Cache.StatusTTL)

	// use cases
	cartUC := usecase.NewCart(orderRepo, catalogRepo, dishCache)
	checkoutUC := usecase.NewCheckout(orderRepo, dispatch, events, statusCache)
	fulfillmentUC := usecase.NewFulfillment(orderRepo, users, events, statusCache)
	queriesUC := usecase.NewQueries(orderRepo, users)

	// handlers + router + middleware
	cartHandler := httpadapter.NewCartHandler(cartUC, checkoutUC)
	orderHandler := httpadapter.NewOrderHandler(fulfillmentUC, queriesUC)
	catalogHandler := httpadapter.NewCatalogHandler(catalogRepo)
	tokenHandler := httpadapter.NewTokenHandler(cfg, users)
	auth := middleware.NewAuth(cfg)
	router := httpadapter.NewRouter(cartHandler, orderHandler, catalogHandler, tokenHandler, auth)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		if rabbitConn != nil {
			_ = rabbitConn.Close()
		}
		if kafkaProducer != nil {
			_ = kafkaProducer.Close()
		}
	}

	return &App{Router: router}, cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
