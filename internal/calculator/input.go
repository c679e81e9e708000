package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alejandrodnm/quadra/internal/domain"
)

// ErrInvalidInput envuelve los errores de validación de entrada.
var ErrInvalidInput = errors.New("invalid input")

// CompareInput es la entrada de la página de multi-estrategias.
// Todos los retornos son fracciones (0.02 = 2%).
//
// Los topes mantienen el resultado finito en el peor caso: $1e12 a 600 meses
// con flip al 10000% da 101^100 × 1e12 ≈ 2.7e212. Inf y NaN no pasan.
type CompareInput struct {
	Amount        float64 `json:"amount" validate:"min_amount,lte=1000000000000"`
	Months        int     `json:"months" validate:"min_months,lte=600"`
	GoldMonthly   float64 `json:"gold_monthly" validate:"gte=0,lte=10"`
	FlipPerPeriod float64 `json:"flip_per_period" validate:"gte=0,lte=100"`
	AlgoAnnual    float64 `json:"algo_annual" validate:"gte=0,lte=100"`
}

// Returns devuelve los retornos en forma de dominio.
func (in CompareInput) Returns() domain.Returns {
	return domain.Returns{
		GoldMonthly:   in.GoldMonthly,
		FlipPerPeriod: in.FlipPerPeriod,
		AlgoAnnual:    in.AlgoAnnual,
	}
}

// CustomInput es la entrada del calculador con pesos y comisiones propios.
// Fees nil usa las comisiones configuradas.
type CustomInput struct {
	CompareInput
	GoldWeight float64             `json:"gold_weight" validate:"gte=0,lte=1"`
	FlipWeight float64             `json:"flip_weight" validate:"gte=0,lte=1"`
	AlgoWeight float64             `json:"algo_weight" validate:"gte=0,lte=1"`
	Fees       *domain.FeeSchedule `json:"fees,omitempty" validate:"omitempty"`
}

// Mix devuelve la mezcla personalizada.
func (in CustomInput) Mix() domain.StrategyMix {
	return domain.StrategyMix{
		Name: CustomStrategyName,
		Gold: in.GoldWeight,
		Flip: in.FlipWeight,
		Algo: in.AlgoWeight,
	}
}

// GoalInput es la entrada del goal seeker. Target es una fracción del capital.
type GoalInput struct {
	Amount float64 `json:"amount" validate:"min_amount,lte=1000000000000"`
	Months int     `json:"months" validate:"min_months,lte=600"`
	Target float64 `json:"target" validate:"gte=0,lte=1000"`
}

// CustomStrategyName es el nombre con que se reporta la mezcla personalizada.
const CustomStrategyName = "CUSTOM"

// newValidator registra las reglas min_amount y min_months con los mínimos configurados.
func newValidator(minAmount float64, minMonths int) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("min_amount", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() >= minAmount
	})
	_ = v.RegisterValidation("min_months", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() >= int64(minMonths)
	})
	return v
}

// validationError traduce los errores del validador a un mensaje legible.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
