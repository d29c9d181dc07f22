package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sheikh-saqib/accounts-ledger/internal/config"
	accounts_http "github.com/sheikh-saqib/accounts-ledger/internal/handler/http/accounts"
	"github.com/sheikh-saqib/accounts-ledger/internal/ledger"
	"github.com/sheikh-saqib/accounts-ledger/internal/metrics"
	"github.com/sheikh-saqib/accounts-ledger/internal/notification"
	"github.com/sheikh-saqib/accounts-ledger/internal/storage/memory"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	sink, closeSink, err := notification.NewSink(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to set up notification sink", zap.String("sink", cfg.NotificationSink), zap.Error(err))
	}
	defer func() {
		if err := closeSink(); err != nil {
			appLogger.Error("Error closing notification sink", zap.Error(err))
		}
	}()
	appLogger.Info("Notification sink ready", zap.String("sink", cfg.NotificationSink))

	store := memory.NewMemoryAccountStore()
	ledgerService := ledger.NewLedger(
		store,
		sink,
		appLogger.With(zap.String("component", "Ledger")),
		ledger.WithNotifyTimeout(cfg.NotifyTimeout),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(metrics.InstrumentHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	accounts_http.RegisterRoutes(router, ledgerService, appLogger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		appLogger.Info("HTTP server gracefully shut down.")
	}
}
