package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tacticalshop/storeapi/internal/aivision"
	"github.com/tacticalshop/storeapi/internal/api"
	"github.com/tacticalshop/storeapi/internal/cartstore"
	"github.com/tacticalshop/storeapi/internal/config"
	"github.com/tacticalshop/storeapi/internal/repository/postgres"
	"github.com/tacticalshop/storeapi/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	// Database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis cart snapshots
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	repos := postgres.NewRepositories(db, logger)
	carts := service.NewCartService(
		cartstore.NewRedisStore(redisClient, cfg.Order.CartTTL),
		repos,
		cfg.Order.MinimumValue,
		logger,
	)
	vision := aivision.NewClient(cfg.AIVision, logger)

	router := api.NewRouter(cfg, repos, carts, vision, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		zapCfg := zap.NewProductionConfig()
		if level, parseErr := zapcore.ParseLevel(cfg.LogLevel); parseErr == nil {
			zapCfg.Level = zap.NewAtomicLevelAt(level)
		}
		logger, err = zapCfg.Build()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
