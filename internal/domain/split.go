package domain

import (
	"fmt"
	"math"
)

// Returns son los retornos supuestos de cada instrumento, en fracciones.
type Returns struct {
	GoldMonthly   float64 `json:"gold_monthly"`    // por mes
	FlipPerPeriod float64 `json:"flip_per_period"` // por ventana de 6 meses
	AlgoAnnual    float64 `json:"algo_annual"`     // por año
}

// AllocationRequest agrupa todo lo necesario para un cálculo completo.
type AllocationRequest struct {
	Amount  float64
	Months  int
	Mix     StrategyMix
	Returns Returns
	Fees    FeeSchedule
}

// PartyShare es lo que recibe una parte, en dólares y en % del capital.
type PartyShare struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// SplitResult es el reparto final entre inversor, Quadra y contratista.
type SplitResult struct {
	Strategy string  `json:"strategy"`
	Amount   float64 `json:"amount"`
	Months   int     `json:"months"`

	Gold InstrumentResult `json:"gold"`
	Flip InstrumentResult `json:"flip"`
	Algo InstrumentResult `json:"algo"`

	PlatformManagementFee   float64 `json:"platform_management_fee"`
	ContractorManagementFee float64 `json:"contractor_management_fee"`

	Investor   PartyShare `json:"investor"`
	Platform   PartyShare `json:"platform"`
	Contractor PartyShare `json:"contractor"`

	TotalGross float64 `json:"total_gross"`
}

// InvestorYield devuelve la ganancia neta del inversor como fracción del capital.
func (s SplitResult) InvestorYield() float64 {
	if s.Amount <= 0 {
		return 0
	}
	return s.Investor.Amount / s.Amount
}

// Reconciles comprueba la conservación: inversor + Quadra + contratista == bruto total.
func (s SplitResult) Reconciles(eps float64) bool {
	sum := s.Investor.Amount + s.Platform.Amount + s.Contractor.Amount
	return math.Abs(sum-s.TotalGross) <= eps
}

// Split valida la mezcla y las comisiones y calcula el reparto completo.
func Split(req AllocationRequest) (SplitResult, error) {
	if err := req.Mix.Validate(); err != nil {
		return SplitResult{}, fmt.Errorf("domain.Split: %w", err)
	}
	if err := req.Fees.Validate(); err != nil {
		return SplitResult{}, fmt.Errorf("domain.Split: %w", err)
	}
	return aggregate(req), nil
}

// aggregate hace el reparto sin validar. Lo usa el goal seeker, que ya validó
// la mezcla y las comisiones una vez antes de barrer.
//
//	platformMgmt   = amount × platformManagement        (sobre todo el capital)
//	contractorMgmt = algoSlice × contractorManagement   (solo la parte algo)
//	investor       = Σ nets − platformMgmt − contractorMgmt
//	platform       = Σ platformFees + platformMgmt
//	contractor     = contractorFee + contractorMgmt
func aggregate(req AllocationRequest) SplitResult {
	gold := GoldArbitrage(req.Amount*req.Mix.Gold, req.Months, req.Returns.GoldMonthly, req.Fees)
	flip := Flipping(req.Amount*req.Mix.Flip, req.Months, req.Returns.FlipPerPeriod, req.Fees)
	algo := AlgoTrading(req.Amount*req.Mix.Algo, req.Months, req.Returns.AlgoAnnual, req.Fees)

	platformMgmt := req.Amount * req.Fees.PlatformManagement
	contractorMgmt := algo.Allocation * req.Fees.ContractorManagement

	investor := gold.Net + flip.Net + algo.Net - platformMgmt - contractorMgmt
	platform := gold.PlatformFee + flip.PlatformFee + algo.PlatformFee + platformMgmt
	contractor := algo.ContractorFee + contractorMgmt

	return SplitResult{
		Strategy:                req.Mix.Name,
		Amount:                  req.Amount,
		Months:                  req.Months,
		Gold:                    gold,
		Flip:                    flip,
		Algo:                    algo,
		PlatformManagementFee:   platformMgmt,
		ContractorManagementFee: contractorMgmt,
		Investor:                share(investor, req.Amount),
		Platform:                share(platform, req.Amount),
		Contractor:              share(contractor, req.Amount),
		TotalGross:              gold.Gross + flip.Gross + algo.Gross,
	}
}

func share(amount, total float64) PartyShare {
	if total <= 0 {
		return PartyShare{Amount: amount}
	}
	return PartyShare{Amount: amount, Percent: amount / total * 100}
}
