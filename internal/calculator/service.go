package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/alejandrodnm/quadra/internal/domain"
	"github.com/alejandrodnm/quadra/internal/ports"
)

// Config es la configuración inmutable del servicio.
type Config struct {
	Fees        domain.FeeSchedule
	Strategies  domain.Catalogue
	Goal        domain.GoalParams
	MinAmount   float64
	MinMonths   int
	GoalWorkers int // <= 0: una goroutine por estrategia
}

// DefaultConfig devuelve las comisiones y estrategias fijas de la plataforma.
func DefaultConfig() Config {
	return Config{
		Fees:       domain.DefaultFeeSchedule(),
		Strategies: domain.DefaultStrategies(),
		Goal:       domain.DefaultGoalParams(),
		MinAmount:  1000,
		MinMonths:  6,
	}
}

// SplitReport es el resultado de Compare.
type SplitReport struct {
	RunID  string               `json:"run_id"`
	Splits []domain.SplitResult `json:"splits"`
}

// GoalReport es el resultado de Seek.
type GoalReport struct {
	RunID  string            `json:"run_id"`
	Result domain.GoalResult `json:"result"`
}

// Service orquesta las validaciones, el cálculo y la presentación.
type Service struct {
	cfg      Config
	validate *validator.Validate
	reporter ports.Reporter
}

// New crea un Service. reporter puede ser nil (p.ej. la API HTTP serializa
// los resultados ella misma).
func New(cfg Config, reporter ports.Reporter) (*Service, error) {
	if err := cfg.Fees.Validate(); err != nil {
		return nil, fmt.Errorf("calculator.New: %w", err)
	}
	if err := cfg.Strategies.Validate(); err != nil {
		return nil, fmt.Errorf("calculator.New: %w", err)
	}
	if err := cfg.Goal.Validate(); err != nil {
		return nil, fmt.Errorf("calculator.New: %w", err)
	}
	cfg.Strategies = append(domain.Catalogue(nil), cfg.Strategies...)
	return &Service{
		cfg:      cfg,
		validate: newValidator(cfg.MinAmount, cfg.MinMonths),
		reporter: reporter,
	}, nil
}

// Strategies devuelve una copia del catálogo en orden de prioridad.
func (s *Service) Strategies() domain.Catalogue {
	return append(domain.Catalogue(nil), s.cfg.Strategies...)
}

// Fees devuelve las comisiones configuradas.
func (s *Service) Fees() domain.FeeSchedule {
	return s.cfg.Fees
}

// Compare calcula el reparto de cada estrategia del catálogo con los mismos retornos.
func (s *Service) Compare(ctx context.Context, in CompareInput) (SplitReport, error) {
	runID := uuid.New().String()
	if err := s.validate.Struct(in); err != nil {
		return SplitReport{}, validationError(err)
	}

	splits := make([]domain.SplitResult, 0, len(s.cfg.Strategies))
	for _, mix := range s.cfg.Strategies {
		res, err := domain.Split(domain.AllocationRequest{
			Amount:  in.Amount,
			Months:  in.Months,
			Mix:     mix,
			Returns: in.Returns(),
			Fees:    s.cfg.Fees,
		})
		if err != nil {
			return SplitReport{}, fmt.Errorf("calculator.Compare: %w", err)
		}
		splits = append(splits, res)
	}

	slog.DebugContext(ctx, "strategies compared",
		"run_id", runID,
		"amount", in.Amount,
		"months", in.Months,
		"strategies", len(splits),
	)

	if s.reporter != nil {
		if err := s.reporter.ReportSplits(ctx, runID, splits); err != nil {
			slog.WarnContext(ctx, "reporter error", "run_id", runID, "err", err)
		}
	}
	return SplitReport{RunID: runID, Splits: splits}, nil
}

// Custom calcula el reparto con pesos y comisiones propios. Una mezcla que no
// suma 100% devuelve *domain.MixError sin calcular nada.
func (s *Service) Custom(ctx context.Context, in CustomInput) (SplitReport, error) {
	runID := uuid.New().String()
	if err := s.validate.Struct(in); err != nil {
		return SplitReport{}, validationError(err)
	}

	mix := in.Mix()
	if err := mix.Validate(); err != nil {
		slog.InfoContext(ctx, "custom mix rejected", "run_id", runID, "sum", mix.Sum())
		if s.reporter != nil {
			if rerr := s.reporter.ReportWarning(ctx, runID, err.Error()); rerr != nil {
				slog.WarnContext(ctx, "reporter error", "run_id", runID, "err", rerr)
			}
		}
		return SplitReport{}, err
	}

	fees := s.cfg.Fees
	if in.Fees != nil {
		fees = *in.Fees
	}

	res, err := domain.Split(domain.AllocationRequest{
		Amount:  in.Amount,
		Months:  in.Months,
		Mix:     mix,
		Returns: in.Returns(),
		Fees:    fees,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFee) {
			return SplitReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return SplitReport{}, fmt.Errorf("calculator.Custom: %w", err)
	}

	splits := []domain.SplitResult{res}
	if s.reporter != nil {
		if err := s.reporter.ReportSplits(ctx, runID, splits); err != nil {
			slog.WarnContext(ctx, "reporter error", "run_id", runID, "err", err)
		}
	}
	return SplitReport{RunID: runID, Splits: splits}, nil
}

// Seek busca la primera estrategia (en orden de prioridad) y el menor retorno
// algo que alcanzan el rendimiento objetivo del inversor. No encontrar nada
// no es un error: Result.Found queda en false.
func (s *Service) Seek(ctx context.Context, in GoalInput) (GoalReport, error) {
	runID := uuid.New().String()
	if err := s.validate.Struct(in); err != nil {
		return GoalReport{}, validationError(err)
	}

	res, err := seekConcurrent(ctx, in, s.cfg, s.cfg.GoalWorkers)
	if err != nil {
		return GoalReport{}, fmt.Errorf("calculator.Seek: %w", err)
	}

	slog.InfoContext(ctx, "goal search complete",
		"run_id", runID,
		"target", in.Target,
		"found", res.Found,
		"strategy", res.Strategy,
		"algo_annual", res.AlgoAnnual,
	)

	if s.reporter != nil {
		if err := s.reporter.ReportGoal(ctx, runID, res); err != nil {
			slog.WarnContext(ctx, "reporter error", "run_id", runID, "err", err)
		}
	}
	return GoalReport{RunID: runID, Result: res}, nil
}
