package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mektycoon/mekgold/tycoon/services"
)

var archiveCMD = &cobra.Command{
	Use:   "archive",
	Short: "Upload old settlement rows to the archive bucket",
	RunE: withDeps("archive", func(cmd *cobra.Command, args []string, rt *deps) error {
		cfg := rt.cfg.Archive
		if !cfg.Enabled() {
			return fmt.Errorf("archive bucket is not configured")
		}

		client, err := services.NewS3Client(cmd.Context(), cfg.Key, cfg.Secret, cfg.Region, cfg.Endpoint)
		if err != nil {
			return err
		}

		res, err := services.NewSettlementArchiver(rt.store, client, cfg.Bucket, cfg.Prefix).
			Archive(cmd.Context(), cfg.OlderThan())
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}),
}

func init() {
	rootCmd.AddCommand(archiveCMD)
}
