package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/zlahmar/EcoTri-sub000/internal/app"
	"github.com/zlahmar/EcoTri-sub000/internal/cache"
	"github.com/zlahmar/EcoTri-sub000/internal/config"
	"github.com/zlahmar/EcoTri-sub000/internal/report"
)

const version = "1.0.0"

func main() {
	var (
		port = flag.Int("port", 4000, "API server port")
		env  = flag.String("env", "development", "Environment (development|staging|production)")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; real deployments set the environment directly.
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := config.Load()
	cfg.Port = *port
	cfg.Env = *env

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	report.Setup(cfg.Env, version)
	defer report.Flush()

	store, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize cache store", "error", err)
		os.Exit(1)
	}

	client := app.NewPooledClient()
	application := app.New(cfg, logger, client, store, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	report.Error(err, sentry.LevelFatal)
	report.Flush()
	logger.Error(err.Error())
	os.Exit(1)
}

// buildStore picks the cache backend: Redis when configured, the
// in-memory store otherwise.
func buildStore(cfg config.Config, logger *slog.Logger) (cache.Store, error) {
	if !cfg.RedisEnabled() {
		return cache.NewMemory(cfg.CacheTTL), nil
	}
	return cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "ecotri:", cfg.CacheTTL, logger)
}
