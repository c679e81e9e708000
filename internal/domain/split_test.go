package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixByName(t *testing.T, name string) StrategyMix {
	t.Helper()
	m, err := DefaultStrategies().Lookup(name)
	require.NoError(t, err)
	return m
}

func TestSplit_MRIRegression(t *testing.T) {
	// amount=10000, 12 meses, gold 2%/mes, flip 5%/6m, algo 30%/año
	res, err := Split(AllocationRequest{
		Amount:  10000,
		Months:  12,
		Mix:     mixByName(t, "MRI"),
		Returns: Returns{GoldMonthly: 0.02, FlipPerPeriod: 0.05, AlgoAnnual: 0.30},
		Fees:    DefaultFeeSchedule(),
	})
	require.NoError(t, err)

	assert.Equal(t, "MRI", res.Strategy)
	assert.InDelta(t, 1100.2221646935466, res.Investor.Amount, 1e-6)
	assert.InDelta(t, 545.0555411733867, res.Platform.Amount, 1e-6)
	assert.InDelta(t, 440.0, res.Contractor.Amount, 1e-6)
	assert.InDelta(t, 11.002221646935466, res.Investor.Percent, 1e-6)

	assert.InDelta(t, 200.0, res.PlatformManagementFee, 1e-9)
	assert.InDelta(t, 80.0, res.ContractorManagementFee, 1e-9) // solo la parte algo
	assert.InDelta(t, 2085.277705866933, res.TotalGross, 1e-6)
	assert.True(t, res.Reconciles(1e-9))
}

func TestSplit_LRIHasNoContractor(t *testing.T) {
	res, err := Split(AllocationRequest{
		Amount:  10000,
		Months:  9,
		Mix:     mixByName(t, "LRI"),
		Returns: Returns{GoldMonthly: 0.08, FlipPerPeriod: 0.18, AlgoAnnual: 0.50},
		Fees:    DefaultFeeSchedule(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Contractor.Amount)
	assert.Equal(t, 0.0, res.Algo.Gross)
	assert.InDelta(t, 4516.018508417734, res.Investor.Amount, 1e-6)
	assert.InDelta(t, 1379.0046271044334, res.Platform.Amount, 1e-6)
}

func TestSplit_Conservation(t *testing.T) {
	returns := []Returns{
		{},
		{GoldMonthly: 0.01, FlipPerPeriod: 0.02, AlgoAnnual: 0.03},
		{GoldMonthly: 0.08, FlipPerPeriod: 0.18, AlgoAnnual: 1.20},
	}
	for _, mix := range DefaultStrategies() {
		for _, months := range []int{6, 9, 13, 36} {
			for _, r := range returns {
				res, err := Split(AllocationRequest{
					Amount: 25000, Months: months, Mix: mix, Returns: r, Fees: DefaultFeeSchedule(),
				})
				require.NoError(t, err)
				sum := res.Investor.Amount + res.Platform.Amount + res.Contractor.Amount
				gross := res.Gold.Gross + res.Flip.Gross + res.Algo.Gross
				assert.InDelta(t, gross, sum, 1e-6, "%s months=%d", mix.Name, months)
			}
		}
	}
}

func TestSplit_ManagementFeesDrawnWithoutProfit(t *testing.T) {
	// sin retorno el inversor solo paga las comisiones de gestión
	res, err := Split(AllocationRequest{
		Amount: 10000, Months: 12, Mix: mixByName(t, "HRI"), Fees: DefaultFeeSchedule(),
	})
	require.NoError(t, err)
	assert.InDelta(t, -340.0, res.Investor.Amount, 1e-9) // 200 + 7000×2%
	assert.InDelta(t, 200.0, res.Platform.Amount, 1e-9)
	assert.InDelta(t, 140.0, res.Contractor.Amount, 1e-9)
}

func TestSplit_CustomMixRejected(t *testing.T) {
	mix := StrategyMix{Name: "custom", Gold: 0.50, Flip: 0.27, Algo: 0.20}
	res, err := Split(AllocationRequest{Amount: 10000, Months: 12, Mix: mix, Fees: DefaultFeeSchedule()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMix))

	var mixErr *MixError
	require.True(t, errors.As(err, &mixErr))
	assert.InDelta(t, 0.97, mixErr.Sum, 1e-9)
	assert.Contains(t, err.Error(), "97.00%")
	assert.Equal(t, SplitResult{}, res)
}

func TestSplit_CustomMixWithinTolerance(t *testing.T) {
	mix := StrategyMix{Name: "custom", Gold: 0.333, Flip: 0.333, Algo: 0.333}
	_, err := Split(AllocationRequest{Amount: 10000, Months: 12, Mix: mix, Fees: DefaultFeeSchedule()})
	assert.NoError(t, err)
}

func TestSplit_InvalidFeeRejected(t *testing.T) {
	fees := DefaultFeeSchedule()
	fees.ContractorPerformance = 1.5
	_, err := Split(AllocationRequest{Amount: 10000, Months: 12, Mix: mixByName(t, "MRI"), Fees: fees})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFee))
}

func TestSplit_CustomFeesApplied(t *testing.T) {
	fees := FeeSchedule{ContractorPerformance: 0.50, PlatformPerformance: 0.10}
	mix := StrategyMix{Name: "custom", Algo: 1.0}
	res, err := Split(AllocationRequest{
		Amount: 1000, Months: 12, Mix: mix, Returns: Returns{AlgoAnnual: 1.0}, Fees: fees,
	})
	require.NoError(t, err)
	assert.InDelta(t, 500.0, res.Contractor.Amount, 1e-9)
	assert.InDelta(t, 50.0, res.Platform.Amount, 1e-9)
	assert.InDelta(t, 450.0, res.Investor.Amount, 1e-9)
}
