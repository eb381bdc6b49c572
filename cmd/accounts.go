package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

var collectCMD = &cobra.Command{
	Use:   "collect <account>",
	Short: "Collect accrued gold for an account",
	Args:  cobra.ExactArgs(1),
	RunE: withDeps("collect", func(cmd *cobra.Command, args []string, rt *deps) error {
		res, err := rt.gold.Collect(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}),
}

var recomputeCMD = &cobra.Command{
	Use:   "recompute <account>",
	Short: "Settle pending gold and recompute the account rate",
	Args:  cobra.ExactArgs(1),
	RunE: withDeps("recompute", func(cmd *cobra.Command, args []string, rt *deps) error {
		res, err := rt.gold.RecomputeRate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}),
}

var showCMD = &cobra.Command{
	Use:   "show <account>",
	Short: "Show an account with its live accrual",
	Args:  cobra.ExactArgs(1),
	RunE: withDeps("show", func(cmd *cobra.Command, args []string, rt *deps) error {
		snap, err := rt.gold.Snapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, struct {
			Account interface{}           `json:"account"`
			Live    *gold.AccountSnapshot `json:"live"`
		}{snap.Account, snap})
	}),
}

var (
	updateBalance float64
	updateRole    string
	updateLevel   int
	updateReset   bool
)

var accountCMD = &cobra.Command{
	Use:   "account <account>",
	Short: "Apply one administrative update to an account",
	Args:  cobra.ExactArgs(1),
	RunE: withDeps("account", func(cmd *cobra.Command, args []string, rt *deps) error {
		var updates []gold.AccountUpdate
		if cmd.Flags().Changed("balance") {
			updates = append(updates, gold.SetBalance{Amount: updateBalance})
		}
		if cmd.Flags().Changed("role") {
			updates = append(updates, gold.SetRole{Role: updateRole})
		}
		if cmd.Flags().Changed("level") {
			updates = append(updates, gold.SetLevel{Level: updateLevel})
		}
		if updateReset {
			updates = append(updates, gold.ResetAccrualClock{})
		}
		if len(updates) != 1 {
			return fmt.Errorf("exactly one of --balance, --role, --level or --reset-clock is required")
		}

		account, err := rt.gold.ApplyAccountUpdate(cmd.Context(), args[0], updates[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, account)
	}),
}

func init() {
	accountCMD.Flags().Float64Var(&updateBalance, "balance", 0, "set the collected balance")
	accountCMD.Flags().StringVar(&updateRole, "role", "", "set the role (player|admin)")
	accountCMD.Flags().IntVar(&updateLevel, "level", 0, "set the level and clear progress")
	accountCMD.Flags().BoolVar(&updateReset, "reset-clock", false, "forfeit pending gold and restart accrual now")

	rootCmd.AddCommand(collectCMD, recomputeCMD, showCMD, accountCMD)
}
