package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tradify-bot/internal/broker/brokerobs"
	"tradify-bot/internal/broker/mt5"
	"tradify-bot/internal/engine"
	"tradify-bot/internal/engine/engineobs"
	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/logger"
	"tradify-bot/internal/news"
	"tradify-bot/internal/scorer"
	"tradify-bot/internal/store"
	"tradify-bot/internal/trace"
	"tradify-bot/internal/tradelog"

	"github.com/joho/godotenv"
)

// initializeSystem initializes the logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("TRADER_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old tradelog files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeBroker builds the MT5 gateway broker with observability
func initializeBroker(ctx context.Context, cfg *store.Config) interfaces.Broker {
	brk := mt5.New(mt5.Params{
		Mode:         cfg.Mode,
		GatewayURL:   os.Getenv("MT5_GATEWAY_URL"),
		Timeout:      time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		OrderTimeout: time.Duration(cfg.Gateway.OrderTimeoutSeconds) * time.Second,
	})

	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	} else {
		logger.Info(ctx, "Using LIVE MT5 gateway", "url", os.Getenv("MT5_GATEWAY_URL"))
	}

	// Wrap with observability middleware
	return brokerobs.Wrap(brk)
}

// initializeScorer loads the model artifact, falling back to a constant
// confidence when no artifact is configured or it fails to load
func initializeScorer(ctx context.Context, cfg *store.Config) interfaces.Scorer {
	if cfg.Model.ArtifactPath != "" {
		art, err := scorer.LoadArtifact(cfg.Model.ArtifactPath)
		if err == nil {
			logger.Info(ctx, "Model artifact loaded",
				"path", cfg.Model.ArtifactPath, "version", art.Version)
			return scorer.NewLogistic(art)
		}
		logger.Warn(ctx, "Failed to load model artifact - using constant scorer",
			"path", cfg.Model.ArtifactPath, "error", err)
	}
	return scorer.NewConstant(cfg.Model.FallbackConfidence)
}

// initializeNewsGate builds the calendar scraper and blackout gate
func initializeNewsGate(cfg *store.Config) *news.Gate {
	scraper := news.NewScraper(time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second)
	return news.NewGate(scraper, cfg.NewsCurrency)
}

// initializeEngine initializes the decision engine with observability
func initializeEngine(cfg *store.Config, settings *store.Settings, brk interfaces.Broker, sc interfaces.Scorer, gate *news.Gate) interfaces.Engine {
	eng := engine.New(cfg, settings, brk, sc, gate)

	// Wrap with observability middleware
	return engineobs.Wrap(eng)
}

// connectBroker establishes the gateway connection, retrying with the
// configured backoff before giving up
func connectBroker(ctx context.Context, brk interfaces.Broker, cfg *store.Config) error {
	wait := time.Duration(cfg.Gateway.ReconnectWaitSecs) * time.Second
	var err error
	for attempt := 1; attempt <= cfg.Gateway.ReconnectAttempts; attempt++ {
		if err = brk.Connect(ctx); err == nil {
			return nil
		}
		logger.Warn(ctx, "Gateway connection failed",
			"attempt", attempt, "max_attempts", cfg.Gateway.ReconnectAttempts, "error", err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		wait *= 2
	}
	return fmt.Errorf("gateway unreachable after %d attempts: %w", cfg.Gateway.ReconnectAttempts, err)
}
