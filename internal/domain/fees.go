package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFee indica una tasa fuera de [0,1].
var ErrInvalidFee = errors.New("invalid fee rate")

// Party identifica a quién se atribuye un importe.
type Party string

const (
	PartyInvestor   Party = "investor"
	PartyPlatform   Party = "platform"
	PartyContractor Party = "contractor"
)

// FeeSchedule son las cuatro tasas que reparten la ganancia.
// Todas son fracciones: 0.20 = 20%.
type FeeSchedule struct {
	PlatformManagement    float64 `json:"platform_management" yaml:"platform_management"`
	PlatformPerformance   float64 `json:"platform_performance" yaml:"platform_performance"`
	ContractorManagement  float64 `json:"contractor_management" yaml:"contractor_management"`
	ContractorPerformance float64 `json:"contractor_performance" yaml:"contractor_performance"`
}

// DefaultFeeSchedule devuelve las comisiones fijas de la plataforma:
// 2% / 20% para Quadra y 2% / 30% para el contratista.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		PlatformManagement:    0.02,
		PlatformPerformance:   0.20,
		ContractorManagement:  0.02,
		ContractorPerformance: 0.30,
	}
}

// Validate rechaza cualquier tasa fuera de [0,1].
func (f FeeSchedule) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"platform_management", f.PlatformManagement},
		{"platform_performance", f.PlatformPerformance},
		{"contractor_management", f.ContractorManagement},
		{"contractor_performance", f.ContractorPerformance},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 || math.IsNaN(r.v) {
			return fmt.Errorf("%w: %s=%.4f", ErrInvalidFee, r.name, r.v)
		}
	}
	return nil
}

// FeeLayer es una comisión de performance cobrada por una parte sobre lo que
// queda después de las capas anteriores.
type FeeLayer struct {
	Party Party
	Rate  float64
}

// ApplyLayers aplica las capas en orden. Cada capa cobra Rate sobre el
// remanente de la anterior (fee-on-fee), no sobre el bruto original.
//
//	remaining₀ = gross
//	feeᵢ       = remainingᵢ × rateᵢ
//	remainingᵢ₊₁ = remainingᵢ − feeᵢ
//
// Devuelve el neto final y las comisiones en el mismo orden que las capas.
func ApplyLayers(gross float64, layers ...FeeLayer) (net float64, fees []float64) {
	fees = make([]float64, len(layers))
	net = gross
	for i, l := range layers {
		fees[i] = net * l.Rate
		net -= fees[i]
	}
	return net, fees
}

// PlatformLayers son las capas de gold y flipping: solo Quadra cobra performance.
func (f FeeSchedule) PlatformLayers() []FeeLayer {
	return []FeeLayer{
		{Party: PartyPlatform, Rate: f.PlatformPerformance},
	}
}

// AlgoLayers son las capas del algo trading: primero el contratista y
// después Quadra sobre lo que queda.
func (f FeeSchedule) AlgoLayers() []FeeLayer {
	return []FeeLayer{
		{Party: PartyContractor, Rate: f.ContractorPerformance},
		{Party: PartyPlatform, Rate: f.PlatformPerformance},
	}
}
