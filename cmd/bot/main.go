package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradify-bot/internal/logger"
	"tradify-bot/internal/scheduler"
	"tradify-bot/internal/server"
	"tradify-bot/internal/store"
	"tradify-bot/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	compressOldLogs(ctx)

	settings := store.NewSettings(cfg)
	brk := initializeBroker(ctx, cfg)
	sc := initializeScorer(ctx, cfg)
	gate := initializeNewsGate(cfg)
	eng := initializeEngine(cfg, settings, brk, sc, gate)

	if err := connectBroker(ctx, brk, cfg); err != nil {
		logger.ErrorWithErr(ctx, "Could not reach trading gateway", err)
		os.Exit(1)
	}

	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.New(cfg, eng, brk, sc, settings)
		go func() {
			logger.Info(ctx, "HTTP server listening", "port", cfg.Server.Port)
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorWithErr(ctx, "HTTP server stopped", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	sched := scheduler.New(eng, brk,
		time.Duration(cfg.CycleMinutes)*time.Minute,
		cfg.Gateway.ReconnectAttempts,
		time.Duration(cfg.Gateway.ReconnectWaitSecs)*time.Second,
	)

	logger.Info(ctx, "Bot started",
		"mode", cfg.Mode, "symbols", cfg.Symbols, "cycle_minutes", cfg.CycleMinutes)
	sched.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if srv != nil {
		_ = srv.Stop(shutdownCtx)
	}
	_ = trace.Shutdown(shutdownCtx)
	logger.Info(context.Background(), "Bot stopped")
}
