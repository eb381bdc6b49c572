package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mektycoon/mekgold/backend"
	"github.com/mektycoon/mekgold/backend/handlers"
	"github.com/mektycoon/mekgold/tycoon"
	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
	"github.com/mektycoon/mekgold/tycoon/economy/sweeper"
	"github.com/mektycoon/mekgold/tycoon/logger"
	"github.com/mektycoon/mekgold/tycoon/services"
	"github.com/mektycoon/mekgold/tycoon/utils"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := tycoon.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.Setup(cfg.Log.Prefix, cfg.Log.Level)

	slog.Info("Starting Mek gold server",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), config.SchemaInitTimeout)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("driver", db.Driver()),
		slog.Duration("took", time.Since(dbStartTime)))

	store := repositories.NewStore(db.BunDB())
	goldService, err := gold.NewService(store, cfg.Economy)
	if err != nil {
		slog.Error("Failed to create gold service", slog.Any("error", err))
		os.Exit(-1)
	}
	if _, err := goldService.SeedModifierTypes(ctx); err != nil {
		slog.Error("Failed to seed modifier types", slog.Any("error", err))
		os.Exit(-1)
	}

	processes := utils.NewProcessManager(context.Background())

	webApp := &handlers.WebApp{
		Gold:       goldService,
		DB:         db,
		AdminToken: cfg.Web.AdminToken,
		Version:    version,
		Commit:     commit,
	}

	if cfg.Sweeper.Enabled {
		sw := sweeper.New(goldService, cfg.Sweeper.Interval())
		webApp.Sweeper = sw
		processes.Start("modifier-sweeper", "deactivates expired modifiers", sw.Run)
	}

	if cfg.Archive.Enabled() {
		client, err := services.NewS3Client(ctx, cfg.Archive.Key, cfg.Archive.Secret, cfg.Archive.Region, cfg.Archive.Endpoint)
		if err != nil {
			slog.Error("Failed to create archive client", slog.Any("error", err))
			os.Exit(-1)
		}
		archiver := services.NewSettlementArchiver(store, client, cfg.Archive.Bucket, cfg.Archive.Prefix)
		processes.Start("settlement-archiver", "uploads old settlements to object storage", func(ctx context.Context) error {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				if _, err := archiver.Archive(ctx, cfg.Archive.OlderThan()); err != nil {
					logger.LogError("Settlement archive failed", err)
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}
			}
		})
	}

	app := backend.NewApp(webApp, cfg.Web.AllowedOrigins)

	go func() {
		slog.Info("Listening", slog.String("type", "http"), slog.String("address", cfg.Web.Addr()))
		if err := app.Listen(cfg.Web.Addr()); err != nil {
			slog.Error("Server stopped", slog.String("error", err.Error()))
		}
	}()

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	slog.Info("Shutting down...", slog.String("type", "sys"))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	if err := processes.Shutdown(config.ShutdownTimeout); err != nil {
		slog.Error("Background processes did not stop", slog.Any("error", err))
	}

	slog.Info("Shutdown complete", slog.String("type", "sys"))
}
