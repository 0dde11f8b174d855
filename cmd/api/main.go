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

	"github.com/joho/godotenv"
	"github.com/rivalscott04/wastebank-sub000/internal/config"
	"github.com/rivalscott04/wastebank-sub000/internal/db"
	"github.com/rivalscott04/wastebank-sub000/internal/server"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// Amounts and weights go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect error", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("auto migrate error", zap.Error(err))
	}

	srv := server.New(conn, cfg)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("git_sha", cfg.GitSHA),
			zap.Bool("trust_caller_pricing", cfg.TrustCallerPricing))
		errCh <- srv.Start(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}
}
