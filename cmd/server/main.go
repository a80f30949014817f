package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"jobboard_backend/internal/app/di"
	"jobboard_backend/internal/app/router"
	"jobboard_backend/internal/app/seed"
	"jobboard_backend/internal/platform/config"
	"jobboard_backend/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, ".env not found; using system environment variables")
	}
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := newLogger(cfg)
	defer cleanup()

	if cfg.JWT.Secret == "" {
		log.Warn("jwt.secret is not set; set APP_JWT_SECRET in production")
	}

	ctx := context.Background()

	// Backend (memory, redis or sql)
	backend, err := di.OpenBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage backend", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("failed to close storage backend", zap.Error(err))
		}
	}()

	if _, err := seed.Initialize(ctx, backend.Store, cfg.Storage.Namespace, seed.Options{Log: log}); err != nil {
		log.Fatal("bootstrap", zap.Error(err))
	}

	c := di.NewContainer(backend.Store, cfg, log)
	r := router.NewRouter(c, router.Options{
		RequestTimeout: time.Duration(cfg.App.HTTP.RequestTimeoutSec) * time.Second,
		LoginRPS:       cfg.RateLimit.LoginRPS,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	}, log)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.App.HTTP.Host, fmt.Sprint(cfg.App.HTTP.Port)),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.App.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.App.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.App.HTTP.IdleTimeoutSec) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server started",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Storage.Backend),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	return logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
}
