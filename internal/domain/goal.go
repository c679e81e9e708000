package domain

import (
	"fmt"
	"math"
)

// GoalParams fija los retornos de gold y flip en sus máximos y define el
// barrido del retorno algo.
type GoalParams struct {
	GoldMonthly   float64 `json:"gold_monthly" yaml:"gold_monthly"`
	FlipPerPeriod float64 `json:"flip_per_period" yaml:"flip_per_period"`
	AlgoCeiling   float64 `json:"algo_ceiling" yaml:"algo_ceiling"`
	AlgoStep      float64 `json:"algo_step" yaml:"algo_step"`
}

// DefaultGoalParams: gold 8%/mes, flip 18%/6 meses, algo de 0% a 119% en pasos de 1%.
func DefaultGoalParams() GoalParams {
	return GoalParams{
		GoldMonthly:   0.08,
		FlipPerPeriod: 0.18,
		AlgoCeiling:   1.20,
		AlgoStep:      0.01,
	}
}

// Validate exige paso positivo y techo no negativo.
func (p GoalParams) Validate() error {
	if p.AlgoStep <= 0 || p.AlgoCeiling < 0 || p.GoldMonthly < 0 || p.FlipPerPeriod < 0 {
		return fmt.Errorf("domain.GoalParams: step=%.4f ceiling=%.4f gold=%.4f flip=%.4f",
			p.AlgoStep, p.AlgoCeiling, p.GoldMonthly, p.FlipPerPeriod)
	}
	return nil
}

// Steps devuelve el número de candidatos del barrido. El techo es exclusivo:
// con los valores por defecto hay 120 candidatos y el último es 1.19.
// Los candidatos son i × step para i = 0..Steps()-1, indexados para no
// acumular error de coma flotante.
func (p GoalParams) Steps() int {
	return int(math.Round(p.AlgoCeiling / p.AlgoStep))
}

// Candidate devuelve el retorno algo del paso i.
func (p GoalParams) Candidate(i int) float64 {
	return float64(i) * p.AlgoStep
}

// GoalResult es el resultado del goal seeker. Found=false no es un error:
// significa que ni con los parámetros máximos se alcanza el objetivo.
type GoalResult struct {
	Found      bool        `json:"found"`
	Target     float64     `json:"target"`
	Strategy   string      `json:"strategy,omitempty"`
	AlgoAnnual float64     `json:"algo_annual"`
	Returns    Returns     `json:"returns"`
	Split      SplitResult `json:"split"`
}

// SeekStrategy barre el retorno algo para una sola estrategia y devuelve el
// primer candidato cuyo rendimiento del inversor alcanza target (fracción).
// La mezcla y las comisiones deben venir validadas.
func SeekStrategy(amount float64, months int, target float64, mix StrategyMix, fees FeeSchedule, p GoalParams) GoalResult {
	req := AllocationRequest{
		Amount: amount,
		Months: months,
		Mix:    mix,
		Fees:   fees,
		Returns: Returns{
			GoldMonthly:   p.GoldMonthly,
			FlipPerPeriod: p.FlipPerPeriod,
		},
	}
	steps := p.Steps()
	for i := 0; i < steps; i++ {
		req.Returns.AlgoAnnual = p.Candidate(i)
		split := aggregate(req)
		if split.InvestorYield() >= target {
			return GoalResult{
				Found:      true,
				Target:     target,
				Strategy:   mix.Name,
				AlgoAnnual: req.Returns.AlgoAnnual,
				Returns:    req.Returns,
				Split:      split,
			}
		}
	}
	return GoalResult{Target: target}
}

// SeekGoal recorre las estrategias en orden de prioridad y devuelve la
// primera que alcanza target con el menor retorno algo posible.
func SeekGoal(amount float64, months int, target float64, strategies Catalogue, fees FeeSchedule, p GoalParams) (GoalResult, error) {
	if err := strategies.Validate(); err != nil {
		return GoalResult{}, fmt.Errorf("domain.SeekGoal: %w", err)
	}
	if err := fees.Validate(); err != nil {
		return GoalResult{}, fmt.Errorf("domain.SeekGoal: %w", err)
	}
	if err := p.Validate(); err != nil {
		return GoalResult{}, fmt.Errorf("domain.SeekGoal: %w", err)
	}
	for _, mix := range strategies {
		if res := SeekStrategy(amount, months, target, mix, fees, p); res.Found {
			return res, nil
		}
	}
	return GoalResult{Target: target}, nil
}
