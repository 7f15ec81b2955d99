package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tracknstock/internal/commons"
	"tracknstock/internal/infrastructure/httpclient"
	"tracknstock/internal/infrastructure/logger"
	"tracknstock/internal/observability"
	"tracknstock/internal/product"
	"tracknstock/internal/server"
	"tracknstock/internal/view"
)

func main() {
	configPath := flag.String("config", envOr("TRACKNSTOCK_CONFIG", "config.yaml"), "path to an optional YAML config file")
	flag.Parse()

	cfg, err := commons.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	client, err := httpclient.New(cfg.API)
	if err != nil {
		zapLogger.Fatal("creating api client", zap.Error(err))
	}

	engine, err := view.NewEngine()
	if err != nil {
		zapLogger.Fatal("parsing templates", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	inventoryCtrl := product.NewModule(client, cfg.API.BaseURL, engine, zapLogger, metrics)

	router := server.NewRouter(server.RouterParams{
		Logger:    zapLogger,
		Config:    cfg.Server,
		Inventory: inventoryCtrl,
		Metrics:   metrics,
	})

	srv := server.New(cfg.Server.Port, router, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger.Info("inventory backend configured",
		zap.String("baseUrl", cfg.API.BaseURL),
		zap.Duration("timeout", cfg.API.Timeout),
		zap.String("environment", cfg.Server.Environment),
	)

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
