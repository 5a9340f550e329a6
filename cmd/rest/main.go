package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"ai-note-assistant/internal/bootstrap"
	"ai-note-assistant/internal/config"
	"ai-note-assistant/internal/server"
	"ai-note-assistant/internal/tracer"
	"ai-note-assistant/pkg/database"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; notes stay in memory without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer container.Close()

	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	srv := server.New(cfg, container)

	// 4. Run everything under one group; the first failure stops the rest
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return container.WebSocketHub.Run(gctx)
	})
	g.Go(func() error {
		return container.ConsumerService.Consume(gctx)
	})
	if container.LexiconWatcher != nil {
		g.Go(func() error {
			return container.LexiconWatcher.Run(gctx)
		})
	}
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Main", "Stopped with error", map[string]interface{}{"error": err})
		return
	}
	container.Logger.Info("Main", "Shutdown complete", nil)
}
