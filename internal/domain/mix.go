package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MixTolerance es la desviación máxima permitida entre la suma de pesos y 1.0.
const MixTolerance = 0.01

var (
	// ErrInvalidMix indica que los pesos de una estrategia no suman 100%.
	ErrInvalidMix = errors.New("invalid strategy mix")
	// ErrUnknownStrategy indica que el nombre no existe en el catálogo.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// StrategyMix reparte la inversión total entre los tres instrumentos.
// Los pesos son fracciones: 0.30 = 30% del capital.
type StrategyMix struct {
	Name string  `json:"name" yaml:"name"`
	Gold float64 `json:"gold" yaml:"gold"`
	Flip float64 `json:"flip" yaml:"flip"`
	Algo float64 `json:"algo" yaml:"algo"`
}

// Sum devuelve la suma de los tres pesos.
func (m StrategyMix) Sum() float64 {
	return m.Gold + m.Flip + m.Algo
}

// Validate comprueba que los pesos estén en [0,1] y sumen 1.0 ± MixTolerance.
func (m StrategyMix) Validate() error {
	for _, w := range []float64{m.Gold, m.Flip, m.Algo} {
		if w < 0 || w > 1 || math.IsNaN(w) {
			return &MixError{Mix: m, Sum: m.Sum()}
		}
	}
	if math.Abs(m.Sum()-1.0) > MixTolerance {
		return &MixError{Mix: m, Sum: m.Sum()}
	}
	return nil
}

// MixError es el aviso que bloquea el cálculo cuando la mezcla no es válida.
type MixError struct {
	Mix StrategyMix
	Sum float64
}

func (e *MixError) Error() string {
	return fmt.Sprintf("sum of weights = %.2f%%, must be exactly 100%%", e.Sum*100)
}

// Unwrap permite errors.Is(err, ErrInvalidMix).
func (e *MixError) Unwrap() error {
	return ErrInvalidMix
}

// Catalogue es la lista ordenada de estrategias. El orden es la prioridad
// de búsqueda del goal seeker: la primera que cumple gana.
type Catalogue []StrategyMix

// DefaultStrategies devuelve LRI, MRI y HRI en su orden de prioridad.
func DefaultStrategies() Catalogue {
	return Catalogue{
		{Name: "LRI", Gold: 0.50, Flip: 0.50, Algo: 0.00},
		{Name: "MRI", Gold: 0.30, Flip: 0.30, Algo: 0.40},
		{Name: "HRI", Gold: 0.20, Flip: 0.10, Algo: 0.70},
	}
}

// Lookup busca una estrategia por nombre, sin distinguir mayúsculas.
func (c Catalogue) Lookup(name string) (StrategyMix, error) {
	for _, m := range c {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return StrategyMix{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Validate comprueba cada mezcla y que no haya nombres repetidos.
func (c Catalogue) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty catalogue", ErrInvalidMix)
	}
	seen := make(map[string]bool, len(c))
	for _, m := range c {
		key := strings.ToUpper(m.Name)
		if key == "" || seen[key] {
			return fmt.Errorf("%w: duplicate or empty name %q", ErrInvalidMix, m.Name)
		}
		seen[key] = true
		if err := m.Validate(); err != nil {
			return fmt.Errorf("strategy %s: %w", m.Name, err)
		}
	}
	return nil
}
