package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/config"
	dbRedis "github.com/PaulPCIO/dashboard-widget-document-list/internal/db/redis"
	logpkg "github.com/PaulPCIO/dashboard-widget-document-list/internal/logger"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/metrics"
	documentrepo "github.com/PaulPCIO/dashboard-widget-document-list/internal/repository/document"
	chiTransport "github.com/PaulPCIO/dashboard-widget-document-list/internal/transport/chi"
	documentuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/document"
	healthuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/health"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/livequery"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting "+version.String(),
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
		zap.Duration("settle_interval", cfg.Live.SettleInterval()),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		ClientName: "doclistd",
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register live query metrics explicitly (no init())
	metrics.RegisterLiveQueryMetrics()

	indexFields, err := cfg.IndexFields()
	if err != nil {
		logger.Fatal("Invalid index fields", zap.Error(err))
	}
	docRepo := documentrepo.New(store, documentrepo.Config{
		KeyPrefix:   cfg.Storage.KeyPrefix,
		MaxResults:  cfg.Query.MaxResults,
		IndexFields: indexFields,
	})
	if err := docRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create search index", zap.Error(err))
	}

	// Create use case services
	liveSvc := livequery.New(docRepo).WithSettleInterval(cfg.Live.SettleInterval())
	docSvc := documentuc.New(docRepo)
	healthSvc := healthuc.New(store, docRepo).WithTimeout(cfg.HTTP.HealthCheckTimeout())

	server := chiTransport.NewServer(docSvc, liveSvc, healthSvc, logger).
		WithKeepalive(cfg.Live.Keepalive()).
		WithDefaultAPIVersion(cfg.Query.APIVersion)
	r := chiTransport.NewRouter(server, logger, cfg.Auth.APIKeys)

	// Live streams never go idle, so shutdown cancels their contexts.
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelStreams)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
