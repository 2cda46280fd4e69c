// Package main provides the HTTP API binary serving boss generation.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bossgen/internal/api"
	"github.com/cory-johannsen/bossgen/internal/config"
	"github.com/cory-johannsen/bossgen/internal/observability"
	"github.com/cory-johannsen/bossgen/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger("bossapi", cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	handlers := api.NewHandlers(cfg.Generator, cfg.API, logger)
	srv := &http.Server{
		Addr:              cfg.API.Addr(),
		Handler:           api.NewRouter(handlers),
		ReadHeaderTimeout: cfg.API.ReadHeaderTimeout,
	}

	lc := server.NewLifecycle(logger, cfg.API.ShutdownTimeout)
	lc.Add("http-api", &server.HTTPService{Server: srv})

	logger.Info("boss api ready",
		zap.String("addr", cfg.API.Addr()),
		zap.Bool("fixed_seed", cfg.Generator.Seed != 0),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
