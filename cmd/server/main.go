package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haeun/braintalk/internal/api"
	"github.com/haeun/braintalk/internal/config"
	"github.com/haeun/braintalk/internal/db"
	"github.com/haeun/braintalk/internal/logger"
	"github.com/haeun/braintalk/internal/repository/sqlite"
	"github.com/haeun/braintalk/internal/session"
	"github.com/haeun/braintalk/internal/transcribe"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("BrainTalk Assessment Server Starting")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("transcribe_base_url=%s", cfg.TranscribeBaseURL)
	log.Debug("transcribe_model=%s", cfg.TranscribeModel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	sessionRepo := sqlite.NewSessionRepository(database.DB)
	sessionService := session.NewService(sessionRepo)
	transcriber := transcribe.New(transcribe.Options{
		BaseURL:  cfg.TranscribeBaseURL,
		APIKey:   cfg.TranscribeAPIKey,
		Model:    cfg.TranscribeModel,
		Language: cfg.TranscribeLanguage,
		Timeout:  cfg.TranscribeTimeout,
	})

	srv := &api.Server{
		Sessions:    sessionService,
		Transcriber: transcriber,
		DB:          database,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("BrainTalk Assessment Server Stopped")
}
