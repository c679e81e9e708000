package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultFees = DefaultFeeSchedule()

// --- ApplyLayers ---

func TestApplyLayers_OrderMatters(t *testing.T) {
	// 1000 → contratista 30% = 300 → quedan 700 → Quadra 20% = 140 → neto 560
	net, fees := ApplyLayers(1000, defaultFees.AlgoLayers()...)
	assert.InDelta(t, 560.0, net, 1e-9)
	assert.InDelta(t, 300.0, fees[0], 1e-9)
	assert.InDelta(t, 140.0, fees[1], 1e-9)

	// Orden invertido: Quadra 200 primero, contratista 240 después
	reversed := []FeeLayer{
		{Party: PartyPlatform, Rate: 0.20},
		{Party: PartyContractor, Rate: 0.30},
	}
	net, fees = ApplyLayers(1000, reversed...)
	assert.InDelta(t, 560.0, net, 1e-9)
	assert.InDelta(t, 200.0, fees[0], 1e-9)
	assert.InDelta(t, 240.0, fees[1], 1e-9)
}

func TestApplyLayers_NoLayers(t *testing.T) {
	net, fees := ApplyLayers(123.45)
	assert.Equal(t, 123.45, net)
	assert.Empty(t, fees)
}

// --- GoldArbitrage ---

func TestGoldArbitrage_Basic(t *testing.T) {
	// 3000 × (1.02^9 − 1) = 585.2777
	r := GoldArbitrage(3000, 12, 0.02, defaultFees)
	assert.InDelta(t, 585.2777058669332, r.Gross, 1e-9)
	assert.InDelta(t, r.Gross*0.20, r.PlatformFee, 1e-9)
	assert.InDelta(t, r.Gross*0.80, r.Net, 1e-9)
	assert.Equal(t, 0.0, r.ContractorFee)
}

func TestGoldArbitrage_CappedAtNineMonths(t *testing.T) {
	base := GoldArbitrage(1000, 9, 0.05, defaultFees)
	for _, months := range []int{9, 10, 12, 24, 120} {
		r := GoldArbitrage(1000, months, 0.05, defaultFees)
		assert.Equal(t, base.Gross, r.Gross, "months=%d", months)
		assert.Equal(t, base.Net, r.Net, "months=%d", months)
		assert.Equal(t, base.PlatformFee, r.PlatformFee, "months=%d", months)
	}
	shorter := GoldArbitrage(1000, 6, 0.05, defaultFees)
	assert.Less(t, shorter.Gross, base.Gross)
}

func TestGoldArbitrage_ZeroInvestment(t *testing.T) {
	r := GoldArbitrage(0, 12, 0.08, defaultFees)
	assert.Equal(t, InstrumentResult{Instrument: InstrumentGold}, r)
}

// --- Flipping ---

func TestFlipping_OnePeriod(t *testing.T) {
	for months := 6; months <= 11; months++ {
		r := Flipping(1000, months, 0.10, defaultFees)
		assert.InDelta(t, 100.0, r.Gross, 1e-9, "months=%d", months)
		assert.InDelta(t, 20.0, r.PlatformFee, 1e-9, "months=%d", months)
		assert.InDelta(t, 80.0, r.Net, 1e-9, "months=%d", months)
	}
}

func TestFlipping_PartialWindowEarnsNothing(t *testing.T) {
	for months := 0; months <= 5; months++ {
		r := Flipping(1000, months, 0.10, defaultFees)
		assert.Equal(t, 0.0, r.Gross, "months=%d", months)
		assert.Equal(t, 0.0, r.Net, "months=%d", months)
		assert.Equal(t, 0.0, r.PlatformFee, "months=%d", months)
	}
}

func TestFlipping_MultiplePeriods(t *testing.T) {
	// 17 meses → 2 ventanas
	r := Flipping(3000, 17, 0.05, defaultFees)
	assert.InDelta(t, 300.0, r.Gross, 1e-9)
	assert.InDelta(t, 240.0, r.Net, 1e-9)
}

// --- AlgoTrading ---

func TestAlgoTrading_FeeOnFee(t *testing.T) {
	r := AlgoTrading(1000, 12, 1.0, defaultFees)
	assert.InDelta(t, 1000.0, r.Gross, 1e-9)
	assert.InDelta(t, 300.0, r.ContractorFee, 1e-9)
	assert.InDelta(t, 140.0, r.PlatformFee, 1e-9) // 20% de 700, no de 1000
	assert.InDelta(t, 560.0, r.Net, 1e-9)
}

func TestAlgoTrading_LinearProRating(t *testing.T) {
	// 6 meses = medio año, sin capitalizar
	r := AlgoTrading(4000, 6, 0.30, defaultFees)
	assert.InDelta(t, 600.0, r.Gross, 1e-9)
}

func TestAlgoTrading_ZeroInvestment(t *testing.T) {
	r := AlgoTrading(0, 12, 1.0, defaultFees)
	assert.Equal(t, 0.0, r.Gross)
	assert.Equal(t, 0.0, r.Net)
	assert.Equal(t, 0.0, r.Fees())
}

func TestInstruments_NetPlusFeesEqualsGross(t *testing.T) {
	cases := []InstrumentResult{
		GoldArbitrage(2500, 7, 0.031, defaultFees),
		Flipping(2500, 19, 0.17, defaultFees),
		AlgoTrading(2500, 19, 0.87, defaultFees),
	}
	for _, r := range cases {
		assert.InDelta(t, r.Gross, r.Net+r.Fees(), 1e-9, string(r.Instrument))
		assert.GreaterOrEqual(t, r.Gross, 0.0)
	}
}
