package main

import (
	"log/slog"
	"net/http"
	"os"

	"cuesplit/internal/api"
	"cuesplit/internal/config"
	"cuesplit/internal/storage/sqlite"
	"cuesplit/internal/upload"
	"cuesplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	uploader := upload.New(upload.Config{
		URL:     cfg.Media.UploadURL,
		APIKey:  cfg.Media.APIKey,
		Timeout: cfg.Media.Timeout,
	})

	handler := api.NewHandler(store, uploader)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("Server starting", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
