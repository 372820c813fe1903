package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/martellev/mealplanner/internal/config"
	"github.com/martellev/mealplanner/internal/database"
	"github.com/martellev/mealplanner/internal/repository"
	"github.com/martellev/mealplanner/internal/server"
	"github.com/martellev/mealplanner/internal/services"
	"github.com/martellev/mealplanner/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var documents storage.DocumentStore
	switch cfg.DocumentBackend {
	case config.BackendSQLite:
		documents = repository.NewDocumentRepository(db)
	default:
		documents = storage.NewFileDocumentStore(cfg.DocumentDir())
	}

	var images storage.ImageStore
	switch cfg.ImageBackend {
	case config.BackendS3:
		images, err = storage.NewS3ImageStore(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
		if err != nil {
			slog.Error("creating S3 image store", "error", err)
			os.Exit(1)
		}
	default:
		images = storage.NewFileImageStore(cfg.ImageDir())
	}

	activityRepo := repository.NewActivityRepository(db)
	planner := services.NewPlanner(storage.NewGateway(documents, images), activityRepo, cfg.Location)
	planner.Bootstrap(ctx)

	srv := server.New(planner, activityRepo, cfg)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
