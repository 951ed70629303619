package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"obligation-engine/internal/domain"
)

// DefaultSweepConcurrency bounds how many obligations a sweep reconciles in
// parallel. Obligations share no state, so the only serialization needed is
// the store's per-obligation optimistic write.
const DefaultSweepConcurrency = 8

// Sweep reconciles every open obligation once. Per-obligation failures are
// collected into the report and never abort the rest of the sweep; stale
// writes count as successes. Safe to run while the event-driven path is
// live, and safe to overlap with another sweep.
func (r *Reconciler) Sweep(ctx context.Context, now time.Time, concurrency int) (*domain.SweepReport, error) {
	if concurrency <= 0 {
		concurrency = DefaultSweepConcurrency
	}

	ids, err := r.repo.ListOpenObligations(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list open obligations: %w", err)
	}

	report := &domain.SweepReport{
		RunID:     uuid.NewString(),
		StartedAt: now,
	}
	log := r.logger.With(zap.String("run_id", report.RunID))
	log.Info("sweep started", zap.Int("obligations", len(ids)))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			result, err := r.Reconcile(gctx, id, now)

			mu.Lock()
			defer mu.Unlock()
			report.Processed++
			if err != nil {
				report.Errors = append(report.Errors, domain.SweepError{
					ObligationID: id,
					Err:          err.Error(),
				})
				return nil
			}
			if result.Wrote && result.StatusAfter != result.StatusBefore {
				// Bookkeeping-only writes on an already-overdue row (a new
				// penalty period crossing) are not status transitions.
				switch result.StatusAfter {
				case domain.StatusCompleted:
					report.Completed++
				case domain.StatusOverdue:
					report.MarkedOverdue++
				case domain.StatusInterrupted:
					report.Interrupted++
				}
			} else if result.StatusAfter != result.StatusBefore {
				// Transition decided but another writer got there first.
				report.StaleWrites++
			}
			return nil
		})
	}

	// Workers never return errors; per-obligation failures live in the
	// report. Wait still propagates context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now().UTC()
	r.metrics.ObserveSweep(report.FinishedAt.Sub(report.StartedAt), len(report.Errors))
	log.Info("sweep finished",
		zap.Int("processed", report.Processed),
		zap.Int("completed", report.Completed),
		zap.Int("marked_overdue", report.MarkedOverdue),
		zap.Int("interrupted", report.Interrupted),
		zap.Int("errors", len(report.Errors)))

	return report, nil
}
