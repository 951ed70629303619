package usecase

import (
	"context"

	"obligation-engine/internal/domain"
)

// ObligationRepository is the engine's read/write boundary. The usecase layer
// depends on this interface, not on a concrete store.
//
// SaveObligation must implement the optimistic precondition: the write only
// lands if the stored status still equals expectedStatus, otherwise it
// returns domain.ErrStaleWrite.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go -package=mock_usecase
type ObligationRepository interface {
	LoadObligation(ctx context.Context, id string) (domain.Obligation, error)
	LoadTransactions(ctx context.Context, obligationID string) ([]domain.TransactionRecord, error)
	// ListOpenObligations returns the ids of every obligation in a
	// non-terminal status, the population of a batch sweep.
	ListOpenObligations(ctx context.Context) ([]string, error)
	SaveObligation(ctx context.Context, o domain.Obligation, expectedStatus domain.Status) error
}

// Notifier receives domain events after a persisted status transition.
// Implementations deliver to dashboards or messaging; the engine never
// formats a human-facing message.
type Notifier interface {
	StatusChanged(ctx context.Context, event domain.StatusChanged)
}
