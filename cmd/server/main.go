package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/server"
	"wealth-dashboard/internal/trace"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}
	defer func() { _ = trace.Shutdown(context.Background()) }()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	repo, err := initializePortfolio(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open portfolio store", err)
		os.Exit(1)
	}

	market := initializeMarketData(ctx, cfg)
	settler := initializeSettler(repo)
	headlines := initializeHeadlines(ctx, cfg)
	analyst := initializeAnalyst(ctx, cfg, headlines)
	dash := initializeDashboard(market, repo)

	handler := server.NewHandler(cfg, repo, market, settler, analyst, dash)
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server.SetupRoutes(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "Server started", "addr", srv.Addr, "mode", string(cfg.EffectiveMode()), "symbol", cfg.DefaultSymbol)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server failed", err)
			cancel()
		}
	}()

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(ctx, "Graceful shutdown failed", err)
	}
}
