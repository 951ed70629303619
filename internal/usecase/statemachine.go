package usecase

import (
	"obligation-engine/internal/domain"
)

// Transition is the state machine's decision for one obligation: the next
// status and whether that status differs from the current one. The reconciler
// combines StatusChanged with penalty drift to decide whether to write.
type Transition struct {
	Next          domain.Status
	StatusChanged bool
}

// NextStatus computes the forward transition for an obligation given the
// reconciliation verdict and days overdue. Statuses only move forward;
// terminal states never transition, and an overdue loan never falls back to
// plain active.
func NextStatus(o domain.Obligation, verdict domain.Verdict, daysOverdue int) Transition {
	if o.Status.Terminal() {
		return Transition{Next: o.Status}
	}

	if o.Kind == domain.KindSavings {
		return savingsNext(o, daysOverdue)
	}
	return loanNext(o, verdict, daysOverdue)
}

func loanNext(o domain.Obligation, verdict domain.Verdict, daysOverdue int) Transition {
	switch o.Status {
	case domain.StatusPending, domain.StatusApproved:
		// Activation happens at disbursement, outside the engine. A loan
		// never completes before it is active, whatever the verdict says.
		return Transition{Next: o.Status}

	case domain.StatusActive:
		if verdict == domain.VerdictFullySatisfied {
			return Transition{Next: domain.StatusCompleted, StatusChanged: true}
		}
		if daysOverdue > 0 {
			// Overdue is a sub-state of active for computation, but it is
			// persisted literally for external consumers that filter on it.
			return Transition{Next: domain.StatusOverdue, StatusChanged: true}
		}
		return Transition{Next: o.Status}

	case domain.StatusOverdue:
		if verdict == domain.VerdictFullySatisfied {
			return Transition{Next: domain.StatusCompleted, StatusChanged: true}
		}
		return Transition{Next: o.Status}
	}

	return Transition{Next: o.Status}
}

func savingsNext(o domain.Obligation, daysOverdue int) Transition {
	// Savings never auto-complete on reconciliation; completion is driven by
	// a member-initiated withdrawal through withdrawal_pending.
	switch o.Status {
	case domain.StatusActive:
		if daysOverdue >= domain.SavingsInterruptionThresholdDays {
			return Transition{Next: domain.StatusInterrupted, StatusChanged: true}
		}
		return Transition{Next: o.Status}

	case domain.StatusWithdrawalPending, domain.StatusInterrupted:
		return Transition{Next: o.Status}
	}

	return Transition{Next: o.Status}
}
