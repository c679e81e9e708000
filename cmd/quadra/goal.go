package main

import (
	"github.com/spf13/cobra"

	"github.com/alejandrodnm/quadra/internal/calculator"
)

var (
	goalAmount float64
	goalMonths int
	goalTarget float64
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Find the strategy and minimum algo return that reach a target yield",
	Long: `Holds gold and flipping at their maximum returns and sweeps the algo
annual return in 1% steps from 0% to 119%, trying strategies in priority order.
The first strategy that reaches the target wins.

Example:
  quadra goal --amount 10000 --months 12 --target 55`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newConsoleService()
		if err != nil {
			return err
		}
		_, err = svc.Seek(cmd.Context(), calculator.GoalInput{
			Amount: goalAmount,
			Months: goalMonths,
			Target: goalTarget / 100,
		})
		return err
	},
}

func init() {
	goalCmd.Flags().Float64Var(&goalAmount, "amount", 1000, "investment amount in USD (min 1000)")
	goalCmd.Flags().IntVar(&goalMonths, "months", 6, "investment horizon in months (min 6)")
	goalCmd.Flags().Float64Var(&goalTarget, "target", 0, "target investor yield, % of the amount")
	rootCmd.AddCommand(goalCmd)
}
