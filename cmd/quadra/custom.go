package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alejandrodnm/quadra/internal/calculator"
	"github.com/alejandrodnm/quadra/internal/domain"
)

// customFlags son los flags del calculador personalizado, todos en porcentaje.
type customFlags struct {
	returns returnFlags

	goldWeight, flipWeight, algoWeight float64

	platformMgmt, platformPerf, contractorMgmt, contractorPerf float64
}

// input traduce los flags a la entrada del servicio. Solo las comisiones
// que el usuario pasó explícitamente (changed) pisan las de base.
func (f *customFlags) input(changed func(name string) bool, base domain.FeeSchedule) calculator.CustomInput {
	fees := base
	overrides := []struct {
		flag string
		pct  float64
		dst  *float64
	}{
		{"platform-mgmt", f.platformMgmt, &fees.PlatformManagement},
		{"platform-perf", f.platformPerf, &fees.PlatformPerformance},
		{"contractor-mgmt", f.contractorMgmt, &fees.ContractorManagement},
		{"contractor-perf", f.contractorPerf, &fees.ContractorPerformance},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			*o.dst = o.pct / 100
		}
	}

	return calculator.CustomInput{
		CompareInput: f.returns.input(),
		GoldWeight:   f.goldWeight / 100,
		FlipWeight:   f.flipWeight / 100,
		AlgoWeight:   f.algoWeight / 100,
		Fees:         &fees,
	}
}

// customExitError decide el error de salida del comando: la mezcla inválida
// ya se mostró como aviso por consola y no es un fallo (exit 0).
func customExitError(err error) error {
	var mixErr *domain.MixError
	if errors.As(err, &mixErr) {
		return nil
	}
	return err
}

var custom customFlags

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Split with your own weights and fee schedule",
	Long: `Computes the split for a custom blend. Weights must add up to 100%
(±1%); otherwise a warning is printed and nothing is computed.
Fee flags default to the configured fee schedule.

Example:
  quadra custom --amount 20000 --months 18 \
    --gold-weight 40 --flip-weight 20 --algo-weight 40 \
    --gold 3 --flip 10 --algo 45 --contractor-perf 25`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newConsoleService()
		if err != nil {
			return err
		}
		_, err = svc.Custom(cmd.Context(), custom.input(cmd.Flags().Changed, svc.Fees()))
		return customExitError(err)
	},
}

func init() {
	custom.returns.register(customCmd)

	f := customCmd.Flags()
	f.Float64Var(&custom.goldWeight, "gold-weight", 0, "gold arbitrage share, %")
	f.Float64Var(&custom.flipWeight, "flip-weight", 0, "flipping share, %")
	f.Float64Var(&custom.algoWeight, "algo-weight", 0, "algo trading share, %")

	def := domain.DefaultFeeSchedule()
	f.Float64Var(&custom.platformMgmt, "platform-mgmt", def.PlatformManagement*100, "Quadra management fee, %")
	f.Float64Var(&custom.platformPerf, "platform-perf", def.PlatformPerformance*100, "Quadra performance fee, %")
	f.Float64Var(&custom.contractorMgmt, "contractor-mgmt", def.ContractorManagement*100, "contractor management fee, %")
	f.Float64Var(&custom.contractorPerf, "contractor-perf", def.ContractorPerformance*100, "contractor performance fee, %")

	rootCmd.AddCommand(customCmd)
}
