package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mektycoon/mekgold/tycoon"
	"github.com/mektycoon/mekgold/tycoon/database"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "mekctl",
	Short:         "Operate the Mek Tycoon gold economy",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(version string) {
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

type deps struct {
	cfg   *tycoon.Config
	db    *database.DB
	store repositories.Store
	gold  *gold.Service
}

func (r *deps) Close() {
	r.db.Close()
}

// openDeps loads the config, connects and builds the gold service. The
// schema is created when missing so every command works on a fresh database.
func openDeps(ctx context.Context) (*deps, error) {
	cfg, err := tycoon.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Log.Prefix, cfg.Log.Level)

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	store := repositories.NewStore(db.BunDB())
	svc, err := gold.NewService(store, cfg.Economy)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &deps{cfg: cfg, db: db, store: store, gold: svc}, nil
}

// withDeps wraps a command body with dependency setup and command logging.
func withDeps(name string, fn func(cmd *cobra.Command, args []string, rt *deps) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		rt, err := openDeps(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		err = fn(cmd, args, rt)
		logger.LogCommand(name, time.Since(start), err)
		return err
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("Failed to encode output", slog.Any("error", err))
		return err
	}
	return nil
}
