package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create the gold economy schema and seed the modifier catalog",
	RunE: withDeps("migrate", func(cmd *cobra.Command, args []string, rt *deps) error {
		seeded, err := rt.gold.SeedModifierTypes(cmd.Context())
		if err != nil {
			return err
		}

		slog.Info("Schema ready",
			slog.String("type", "db"),
			slog.String("driver", rt.db.Driver()),
			slog.Int("modifier_types", seeded))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
