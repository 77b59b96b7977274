package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"biobag/internal/config"
	"biobag/internal/logger"
	"biobag/internal/server"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	//金額はJSONで数値として返す
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	app, err := server.Build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	go func() {
		log.Info("server listening", "address", addr, "env", cfg.GoEnv)
		if err := app.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	if err := app.Close(shutdownCtx); err != nil {
		log.Error("failed to close mongo client", "error", err)
	}

	log.Info("server stopped gracefully")
}
