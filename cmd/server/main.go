package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/api"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/config"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/logging"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/metrics"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/profiler"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := session.New(ctx, cfg.Session, logger)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.String("backend", cfg.Session.Backend), zap.Error(err))
	}
	defer store.Close()

	service := profiler.NewService(astro.NewBuilder(), store, metrics.NewMetrics(), logger)
	router := api.NewRouter(cfg, service, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Astro Profiler Agent starting", zap.String("port", cfg.Server.Port))
		logger.Info("Agent card available", zap.String("url", "http://localhost:"+cfg.Server.Port+"/.well-known/agent.json"))
		logger.Info("A2A endpoint available", zap.String("url", "http://localhost:"+cfg.Server.Port+"/a2a/astro"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
