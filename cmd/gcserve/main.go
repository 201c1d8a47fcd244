package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leftmike/gcpath/internal/cache"
	"github.com/leftmike/gcpath/internal/config"
	"github.com/leftmike/gcpath/internal/logging"
	"github.com/leftmike/gcpath/internal/observability"
	"github.com/leftmike/gcpath/internal/server"
)

func main() {
	cfg, err := config.Load("gcserve")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	shutdownTracing, err := observability.InitTracing(ctx, cfg.Telemetry, logger)
	if err != nil {
		slog.Warn("telemetry init failed", "error", err)
	} else {
		defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)
	}

	// Cache
	var plotCache server.PlotCache
	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Addr, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer c.Close()
			if err := c.Ping(ctx); err != nil {
				slog.Warn("valkey ping failed", "error", err)
			}
			plotCache = c
		}
	}

	deps := server.NewDependencies(cfg, plotCache, logger)
	app := server.New(cfg, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("server starting", "addr", addr, "static_dir", cfg.Server.StaticDir)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
