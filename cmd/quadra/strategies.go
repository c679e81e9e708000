package main

import (
	"github.com/spf13/cobra"

	"github.com/alejandrodnm/quadra/internal/calculator"
)

// returnFlags son los retornos supuestos, en porcentaje.
type returnFlags struct {
	amount float64
	months int
	gold   float64
	flip   float64
	algo   float64
}

func (f *returnFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.amount, "amount", 1000, "investment amount in USD (min 1000)")
	cmd.Flags().IntVar(&f.months, "months", 6, "investment horizon in months (min 6)")
	cmd.Flags().Float64Var(&f.gold, "gold", 0, "gold arbitrage return, % per month")
	cmd.Flags().Float64Var(&f.flip, "flip", 0, "flipping return, % per 6 months")
	cmd.Flags().Float64Var(&f.algo, "algo", 0, "algo trading return, % per year")
}

func (f *returnFlags) input() calculator.CompareInput {
	return calculator.CompareInput{
		Amount:        f.amount,
		Months:        f.months,
		GoldMonthly:   f.gold / 100,
		FlipPerPeriod: f.flip / 100,
		AlgoAnnual:    f.algo / 100,
	}
}

var strategiesFlags returnFlags

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Compare the investor/platform/contractor split of every strategy",
	Long: `Runs the same return assumptions through every configured strategy
(LRI, MRI, HRI by default) and prints the split for each.

Example:
  quadra strategies --amount 10000 --months 12 --gold 2 --flip 5 --algo 30`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newConsoleService()
		if err != nil {
			return err
		}
		_, err = svc.Compare(cmd.Context(), strategiesFlags.input())
		return err
	},
}

func init() {
	strategiesFlags.register(strategiesCmd)
	rootCmd.AddCommand(strategiesCmd)
}
