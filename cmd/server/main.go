package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api"
	"parsedash/internal/app/server/config"
	"parsedash/internal/infrastructure/storage"
	"parsedash/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg.DB.DatabaseURI, log)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(cfg, store, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("dev server started",
			slog.String("address", cfg.Server.RunAddress),
			slog.String("mount", cfg.Server.MountPath),
			slog.Bool("in_memory", cfg.InMemory()),
		)
		// ListenAndServe вернет ошибку только при фатальном сбое или Shutdown
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// явный порядок завершения: сначала HTTP, потом хранилище
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("storage close failed", "error", err)
	}
	log.Info("dev server stopped")
}
