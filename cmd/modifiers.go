package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

var (
	grantSource    string
	grantMagnitude float64
	grantDuration  time.Duration
)

var grantCMD = &cobra.Command{
	Use:   "grant <account> <type>",
	Short: "Grant or stack a modifier on an account",
	Args:  cobra.ExactArgs(2),
	RunE: withDeps("grant", func(cmd *cobra.Command, args []string, rt *deps) error {
		req := gold.GrantRequest{
			AccountID: args[0],
			TypeID:    args[1],
			Source:    grantSource,
		}
		if cmd.Flags().Changed("magnitude") {
			req.Magnitude = &grantMagnitude
		}
		if cmd.Flags().Changed("duration") {
			req.Duration = &grantDuration
		}

		res, err := rt.gold.GrantModifier(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}),
}

var revokeCMD = &cobra.Command{
	Use:   "revoke <modifier-id>",
	Short: "Deactivate a modifier",
	Args:  cobra.ExactArgs(1),
	RunE: withDeps("revoke", func(cmd *cobra.Command, args []string, rt *deps) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}

		res, err := rt.gold.RevokeModifier(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}),
}

var sweepCMD = &cobra.Command{
	Use:   "sweep",
	Short: "Deactivate expired modifiers and recompute affected accounts",
	RunE: withDeps("sweep", func(cmd *cobra.Command, args []string, rt *deps) error {
		res, err := rt.gold.SweepExpiredModifiers(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}),
}

var seedCMD = &cobra.Command{
	Use:   "seed",
	Short: "Insert or refresh the built-in modifier types",
	RunE: withDeps("seed", func(cmd *cobra.Command, args []string, rt *deps) error {
		n, err := rt.gold.SeedModifierTypes(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]int{"seeded": n})
	}),
}

func init() {
	grantCMD.Flags().StringVar(&grantSource, "source", "", "who granted the modifier (default system)")
	grantCMD.Flags().Float64Var(&grantMagnitude, "magnitude", 0, "override the type's magnitude")
	grantCMD.Flags().DurationVar(&grantDuration, "duration", 0, "override the type's duration; 0 is permanent")

	rootCmd.AddCommand(grantCMD, revokeCMD, sweepCMD, seedCMD)
}
