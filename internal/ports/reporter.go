package ports

import (
	"context"

	"github.com/alejandrodnm/quadra/internal/domain"
)

// Reporter presenta los resultados del cálculo al usuario.
type Reporter interface {
	// ReportSplits muestra el reparto de una o varias estrategias.
	ReportSplits(ctx context.Context, runID string, splits []domain.SplitResult) error

	// ReportGoal muestra la estrategia encontrada por el goal seeker,
	// o el aviso de que el objetivo no es alcanzable.
	ReportGoal(ctx context.Context, runID string, result domain.GoalResult) error

	// ReportWarning muestra un aviso que bloqueó el cálculo (p.ej. mezcla inválida).
	ReportWarning(ctx context.Context, runID string, msg string) error
}
