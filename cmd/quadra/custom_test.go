package main

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/quadra/internal/calculator"
	"github.com/alejandrodnm/quadra/internal/domain"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestCustomFlags_PercentsBecomeFractions(t *testing.T) {
	f := customFlags{
		returns:    returnFlags{amount: 10000, months: 12, gold: 2, flip: 5, algo: 30},
		goldWeight: 50, flipWeight: 30, algoWeight: 20,
	}
	in := f.input(changedSet(), domain.DefaultFeeSchedule())

	assert.Equal(t, 10000.0, in.Amount)
	assert.Equal(t, 12, in.Months)
	assert.InDelta(t, 0.02, in.GoldMonthly, 1e-12)
	assert.InDelta(t, 0.05, in.FlipPerPeriod, 1e-12)
	assert.InDelta(t, 0.30, in.AlgoAnnual, 1e-12)
	assert.InDelta(t, 0.50, in.GoldWeight, 1e-12)
	assert.InDelta(t, 0.30, in.FlipWeight, 1e-12)
	assert.InDelta(t, 0.20, in.AlgoWeight, 1e-12)
	require.NotNil(t, in.Fees)
	assert.Equal(t, domain.DefaultFeeSchedule(), *in.Fees)
}

func TestCustomFlags_OnlyChangedFeesOverride(t *testing.T) {
	base := domain.FeeSchedule{
		PlatformManagement: 0.01, PlatformPerformance: 0.10,
		ContractorManagement: 0.03, ContractorPerformance: 0.40,
	}
	// platformPerf trae un valor pero el usuario no lo pasó
	f := customFlags{platformPerf: 99, contractorPerf: 25, platformMgmt: 0}
	in := f.input(changedSet("contractor-perf", "platform-mgmt"), base)

	require.NotNil(t, in.Fees)
	assert.InDelta(t, 0.25, in.Fees.ContractorPerformance, 1e-12)
	assert.Equal(t, 0.0, in.Fees.PlatformManagement)
	assert.Equal(t, 0.10, in.Fees.PlatformPerformance)
	assert.Equal(t, 0.03, in.Fees.ContractorManagement)
}

func TestCustomExitError(t *testing.T) {
	mixErr := &domain.MixError{Mix: domain.StrategyMix{Name: "CUSTOM"}, Sum: 0.97}
	assert.NoError(t, customExitError(mixErr))
	assert.NoError(t, customExitError(fmt.Errorf("calculator.Custom: %w", mixErr)))
	assert.NoError(t, customExitError(nil))

	inputErr := fmt.Errorf("%w: Amount failed min_amount", calculator.ErrInvalidInput)
	assert.ErrorIs(t, customExitError(inputErr), calculator.ErrInvalidInput)
}

func TestCustomCommand_InvalidMixExitsCleanly(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"custom", "--config", missing,
		"--amount", "10000", "--months", "12",
		"--gold-weight", "50", "--flip-weight", "30", "--algo-weight", "17"})
	assert.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"custom", "--config", missing,
		"--amount", "10", "--months", "12",
		"--gold-weight", "50", "--flip-weight", "30", "--algo-weight", "20"})
	assert.ErrorIs(t, rootCmd.Execute(), calculator.ErrInvalidInput)
}
