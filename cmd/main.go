package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jinwoohan/insuragraph/internal/app"
	httpx "github.com/jinwoohan/insuragraph/internal/http"
	"github.com/jinwoohan/insuragraph/internal/http/handlers"
	"github.com/jinwoohan/insuragraph/internal/observability"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
	"github.com/jinwoohan/insuragraph/internal/session"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "insuragraph",
		Environment: cfg.LogMode,
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}()

	log.Info("Wiring QA pipeline...")
	pipeline, err := app.BuildPipeline(cfg, log)
	if err != nil {
		log.Error("Could not build pipeline", "error", err)
		os.Exit(1)
	}
	defer pipeline.Close(context.Background())

	sessions := session.NewStore()

	srv := httpx.NewServer(httpx.RouterConfig{
		ServiceName:   "insuragraph",
		HealthHandler: handlers.NewHealthHandler(),
		QAHandler:     handlers.NewQAHandler(pipeline.Service, sessions, cfg.DefaultProductID),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.HTTPPort)
		return srv.Run(":" + cfg.HTTPPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
