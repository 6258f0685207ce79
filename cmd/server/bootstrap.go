package main

import (
	"context"
	"fmt"
	"os"

	"wealth-dashboard/internal/dashboard"
	"wealth-dashboard/internal/engine"
	"wealth-dashboard/internal/engine/engineobs"
	"wealth-dashboard/internal/insight/canned"
	"wealth-dashboard/internal/insight/gemini"
	"wealth-dashboard/internal/insight/insightobs"
	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/kvstore"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/marketdata/gateway"
	"wealth-dashboard/internal/marketdata/marketobs"
	"wealth-dashboard/internal/news"
	"wealth-dashboard/internal/portfolio"
	"wealth-dashboard/internal/store"
	"wealth-dashboard/internal/trace"
	"wealth-dashboard/internal/types"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger, and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializePortfolio opens the file-backed store and the repository on
// top of it
func initializePortfolio(ctx context.Context, cfg *store.Config) (interfaces.Portfolio, error) {
	kv, err := kvstore.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir %s: %w", cfg.DataDir, err)
	}
	logger.Info(ctx, "Portfolio store opened", "dir", cfg.DataDir)
	return portfolio.New(kv), nil
}

// initializeMarketData builds the hybrid gateway with observability
func initializeMarketData(ctx context.Context, cfg *store.Config) interfaces.MarketData {
	if cfg.EffectiveMode() == types.ModeLive {
		logger.Info(ctx, "Using LIVE market data with synthetic fallback")
	} else if cfg.MarketAPIKey() == "" {
		logger.Warn(ctx, "No market data credential - running SIMULATED")
	} else {
		logger.Info(ctx, "Running SIMULATED market data by configuration")
	}

	return marketobs.Wrap(gateway.New(cfg))
}

// initializeSettler builds the settlement engine with observability
func initializeSettler(p interfaces.Portfolio) interfaces.Settler {
	return engineobs.Wrap(engine.New(p))
}

// initializeAnalyst picks the insight provider by credential presence,
// with observability
func initializeAnalyst(ctx context.Context, cfg *store.Config, headlines interfaces.HeadlineSource) interfaces.Analyst {
	if cfg.GeminiAPIKey() == "" {
		logger.Warn(ctx, "No Gemini credential - using canned insight text")
		return insightobs.Wrap(canned.NewAnalyst())
	}

	analyst, err := gemini.NewAnalyst(ctx, cfg.Insight.Model, headlines)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to create Gemini client - using canned insight text", err)
		return insightobs.Wrap(canned.NewAnalyst())
	}
	logger.Info(ctx, "Using Gemini insights", "model", cfg.Insight.Model)
	return insightobs.Wrap(analyst)
}

// initializeHeadlines returns the headline service when enabled
func initializeHeadlines(ctx context.Context, cfg *store.Config) interfaces.HeadlineSource {
	if !cfg.News.Enabled {
		return nil
	}
	logger.Info(ctx, "Headline enrichment enabled", "max", cfg.News.MaxHeadlines)
	return news.NewService(cfg.News)
}

// initializeDashboard builds the refresh coordinator
func initializeDashboard(market interfaces.MarketData, p interfaces.Portfolio) *dashboard.Service {
	return dashboard.NewService(market, p)
}
