package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobboard_backend/internal/app/di"
	"jobboard_backend/internal/app/seed"
	"jobboard_backend/internal/platform/config"
	"jobboard_backend/internal/platform/logger"
)

func main() {
	reset := flag.Bool("reset", false, "clear all collections before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if cfg.Storage.Backend == "memory" || cfg.Storage.Backend == "" {
		log.Warn("memory backend is discarded on exit; set storage.backend to redis or sql")
	}
	backend, err := di.OpenBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage backend", zap.Error(err))
	}
	defer backend.Close()

	if *reset {
		if err := seed.Reset(ctx, backend.Store, cfg.Storage.Namespace); err != nil {
			log.Fatal("reset", zap.Error(err))
		}
		log.Info("collections cleared")
	}

	res, err := seed.Initialize(ctx, backend.Store, cfg.Storage.Namespace, seed.Options{Log: log})
	if err != nil {
		log.Fatal("bootstrap", zap.Error(err))
	}
	log.Info("seed ok", zap.Int("written", len(res.Written)))
}
