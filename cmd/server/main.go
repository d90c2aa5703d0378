package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tableside/restaurant-console/internal/api"
	"github.com/tableside/restaurant-console/internal/infrastructure/backend"
	"github.com/tableside/restaurant-console/internal/infrastructure/config"
	redisdb "github.com/tableside/restaurant-console/internal/infrastructure/db/redis"
	"github.com/tableside/restaurant-console/pkg/logger"
)

func main() {
	// Local development reads .env; in production the variables come from the
	// environment and a missing file is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.For("backend"))

	e, err := api.NewRouter(cfg, rdb, client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
