package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"obligation-engine/internal/amount"
	"obligation-engine/internal/dedup"
	"obligation-engine/internal/domain"
	"obligation-engine/pkg/logging"
	"obligation-engine/pkg/metrics"
)

// Reconciler drives an obligation's status forward from the stream of
// gateway transaction events: dedupe, aggregate, compute the amount due,
// classify, transition, persist. Safe to invoke concurrently for the same
// obligation; the store's optimistic precondition serializes the write.
type Reconciler struct {
	repo     ObligationRepository
	amounts  *amount.Calculator
	notifier Notifier
	logger   *logging.Logger
	metrics  *metrics.Recorder
}

// NewReconciler creates a reconciler. notifier and recorder may be nil.
func NewReconciler(repo ObligationRepository, amounts *amount.Calculator, notifier Notifier, logger *logging.Logger, recorder *metrics.Recorder) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{
		repo:     repo,
		amounts:  amounts,
		notifier: notifier,
		logger:   logger.Named("reconciler"),
		metrics:  recorder,
	}
}

// Reconcile computes the authoritative state of one obligation at the given
// instant and persists the forward transition if one is required. Invoking
// it again with no new transactions is a no-op: same verdict, zero writes.
func (r *Reconciler) Reconcile(ctx context.Context, obligationID string, now time.Time) (*domain.ReconcileResult, error) {
	o, err := r.repo.LoadObligation(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("could not load obligation %s: %w", obligationID, err)
	}
	if err := o.Validate(); err != nil {
		r.metrics.ObserveMalformed()
		return nil, err
	}

	records, err := r.repo.LoadTransactions(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("could not load transactions for %s: %w", obligationID, err)
	}

	canonical, duplicates := dedup.Dedupe(records)
	totalPaid, err := dedup.SumCompleted(canonical)
	if err != nil {
		r.metrics.ObserveMalformed()
		return nil, err
	}

	breakdown, err := r.amounts.Breakdown(o, now)
	if err != nil {
		if errors.As(err, new(*domain.MalformedObligationError)) {
			r.metrics.ObserveMalformed()
		}
		return nil, err
	}

	verdict := classify(o, breakdown, totalPaid)
	transition := NextStatus(o, verdict, breakdown.DaysOverdue)

	result := &domain.ReconcileResult{
		ObligationID:    o.ID,
		Breakdown:       breakdown,
		TotalPaid:       totalPaid,
		Verdict:         verdict,
		StatusBefore:    o.Status,
		StatusAfter:     transition.Next,
		DuplicatesFound: len(duplicates),
	}
	r.metrics.ObserveReconcile(string(o.Kind), string(verdict), len(duplicates))

	if !needsWrite(o, transition, breakdown) {
		return result, nil
	}

	updated := o
	updated.Status = transition.Next
	updated.Penalty = breakdown.Penalty
	updated.DaysOverdue = breakdown.DaysOverdue
	updated.IsOverdue = breakdown.DaysOverdue > 0
	updated.LastPenaltyCalculationAt = now
	if transition.Next.Terminal() {
		// A loan settled while overdue leaves the overdue book; the penalty
		// stays on the row as the amount that was actually charged.
		updated.DaysOverdue = 0
		updated.IsOverdue = false
	}

	if err := r.repo.SaveObligation(ctx, updated, o.Status); err != nil {
		if errors.Is(err, domain.ErrStaleWrite) {
			// A concurrent reconcile already advanced the obligation. The
			// desired end state is reached; report success without a write.
			r.metrics.ObserveStaleWrite()
			r.logger.Debug("skipped stale write",
				zap.String("obligation_id", o.ID),
				zap.String("target_status", string(transition.Next)))
			return result, nil
		}
		return nil, fmt.Errorf("could not save obligation %s: %w", o.ID, err)
	}
	result.Wrote = true

	if transition.StatusChanged {
		r.metrics.ObserveTransition(string(transition.Next))
		r.logger.Info("obligation status advanced",
			zap.String("obligation_id", o.ID),
			zap.String("from", string(o.Status)),
			zap.String("to", string(transition.Next)),
			zap.Int64("total_due", breakdown.TotalDue),
			zap.Int64("total_paid", totalPaid))
		if r.notifier != nil {
			r.notifier.StatusChanged(ctx, domain.StatusChanged{
				EventID:      uuid.NewString(),
				ObligationID: o.ID,
				OwnerID:      o.OwnerID,
				From:         o.Status,
				To:           transition.Next,
				At:           now,
			})
		}
	}

	return result, nil
}

// classify applies the tolerance-based verdict rule.
func classify(o domain.Obligation, b domain.AmountBreakdown, totalPaid int64) domain.Verdict {
	if totalPaid >= b.TotalDue-o.ToleranceMinorUnits {
		return domain.VerdictFullySatisfied
	}
	if b.DaysOverdue > 0 {
		return domain.VerdictOverdue
	}
	return domain.VerdictPartiallySatisfied
}

// needsWrite is the idempotence guard: write only when the status moves or
// the engine-owned bookkeeping on a live obligation drifted.
func needsWrite(o domain.Obligation, t Transition, b domain.AmountBreakdown) bool {
	if o.Status.Terminal() {
		return false
	}
	if t.StatusChanged {
		return true
	}
	switch o.Status {
	case domain.StatusActive, domain.StatusOverdue:
		return o.Penalty != b.Penalty ||
			o.DaysOverdue != b.DaysOverdue ||
			o.IsOverdue != (b.DaysOverdue > 0)
	}
	return false
}
