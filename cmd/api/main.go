package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/rogue-engine/internal/config"
	"github.com/jwebster45206/rogue-engine/internal/handlers"
	"github.com/jwebster45206/rogue-engine/internal/logger"
	"github.com/jwebster45206/rogue-engine/internal/storage"
	"github.com/jwebster45206/rogue-engine/pkg/registry"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Rogue Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir)

	reg, err := registry.Load(cfg.DataDir)
	if err != nil {
		log.Error("Failed to load content registry", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(reg, store, cfg.WorldSeed, log)
	mux.Handle("/v1/session", sessionHandler)
	mux.Handle("/v1/session/", sessionHandler)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
