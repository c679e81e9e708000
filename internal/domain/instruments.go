package domain

import "math"

// Instrument identifica cada sub-inversión de una estrategia.
type Instrument string

const (
	InstrumentGold Instrument = "gold"
	InstrumentFlip Instrument = "flip"
	InstrumentAlgo Instrument = "algo"
)

const (
	// GoldActiveMonthsCap: el arbitraje de oro solo opera 9 meses y sale.
	GoldActiveMonthsCap = 9
	// FlipPeriodMonths es la duración de una ventana de flipping.
	FlipPeriodMonths = 6
)

// InstrumentResult es el reparto de la ganancia bruta de un instrumento.
// Siempre se cumple Net + PlatformFee + ContractorFee == Gross.
type InstrumentResult struct {
	Instrument    Instrument `json:"instrument"`
	Allocation    float64    `json:"allocation"`
	Gross         float64    `json:"gross"`
	Net           float64    `json:"net"`
	PlatformFee   float64    `json:"platform_fee"`
	ContractorFee float64    `json:"contractor_fee"`
}

// Fees devuelve la suma de comisiones de performance del instrumento.
func (r InstrumentResult) Fees() float64 {
	return r.PlatformFee + r.ContractorFee
}

// GoldArbitrage calcula el arbitraje de oro.
//
// Fórmula:
//
//	activeMonths = min(9, months)
//	gross        = investment × ((1 + monthlyReturn)^activeMonths − 1)
//	fee          = gross × platformPerformance
//	net          = gross − fee
//
// Con investment = 0 devuelve ceros sin evaluar la fórmula.
func GoldArbitrage(investment float64, months int, monthlyReturn float64, fees FeeSchedule) InstrumentResult {
	res := InstrumentResult{Instrument: InstrumentGold, Allocation: investment}
	if investment <= 0 {
		return res
	}
	active := min(GoldActiveMonthsCap, max(months, 0))
	gross := investment * (math.Pow(1+monthlyReturn, float64(active)) - 1)
	return settle(res, gross, fees.PlatformLayers())
}

// Flipping calcula el flipping semestral. Las ventanas incompletas de 6 meses
// no generan nada: periods = months / 6 (división entera).
//
//	gross = investment × returnPer6Months × periods
func Flipping(investment float64, months int, returnPer6Months float64, fees FeeSchedule) InstrumentResult {
	res := InstrumentResult{Instrument: InstrumentFlip, Allocation: investment}
	if investment <= 0 {
		return res
	}
	periods := max(months, 0) / FlipPeriodMonths
	gross := investment * returnPer6Months * float64(periods)
	return settle(res, gross, fees.PlatformLayers())
}

// AlgoTrading calcula la asignación de trading algorítmico. El retorno anual
// se prorratea linealmente (sin capitalizar):
//
//	gross = investment × annualReturn × months / 12
//
// El contratista cobra primero su performance sobre el bruto; Quadra cobra
// la suya sobre lo que queda.
func AlgoTrading(investment float64, months int, annualReturn float64, fees FeeSchedule) InstrumentResult {
	res := InstrumentResult{Instrument: InstrumentAlgo, Allocation: investment}
	if investment <= 0 {
		return res
	}
	gross := investment * annualReturn * float64(max(months, 0)) / 12
	return settle(res, gross, fees.AlgoLayers())
}

// settle aplica las capas y atribuye cada comisión a su parte.
func settle(res InstrumentResult, gross float64, layers []FeeLayer) InstrumentResult {
	net, charged := ApplyLayers(gross, layers...)
	res.Gross = gross
	res.Net = net
	for i, l := range layers {
		switch l.Party {
		case PartyPlatform:
			res.PlatformFee += charged[i]
		case PartyContractor:
			res.ContractorFee += charged[i]
		}
	}
	return res
}
