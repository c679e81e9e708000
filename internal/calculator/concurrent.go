package calculator

// concurrent.go: worker pool para el goal seeker.
//
// Cada estrategia se barre en su propia tarea. El resultado no depende del
// orden en que terminen los workers: se elige la primera estrategia del
// catálogo que cumple, igual que domain.SeekGoal.

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alejandrodnm/quadra/internal/domain"
)

// seekConcurrent barre todas las estrategias en paralelo con un pool de workers.
// Si workers <= 0 usa una goroutine por estrategia.
func seekConcurrent(ctx context.Context, in GoalInput, cfg Config, workers int) (domain.GoalResult, error) {
	strategies := cfg.Strategies
	if workers <= 0 || workers > len(strategies) {
		workers = len(strategies)
	}

	// results[i] corresponde a strategies[i]; cada worker escribe un índice distinto.
	results := make([]domain.GoalResult, len(strategies))
	workCh := make(chan int, len(strategies))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				if ctx.Err() != nil {
					continue
				}
				results[i] = domain.SeekStrategy(in.Amount, in.Months, in.Target, strategies[i], cfg.Fees, cfg.Goal)
			}
		}()
	}

	for i := range strategies {
		workCh <- i
	}
	close(workCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.GoalResult{}, err
	}

	slog.Debug("concurrent goal search complete",
		"strategies", len(strategies),
		"workers", workers,
	)

	for _, res := range results {
		if res.Found {
			return res, nil
		}
	}
	return domain.GoalResult{Target: in.Target}, nil
}
