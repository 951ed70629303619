package gateway

import (
	"context"
	"sync"

	"obligation-engine/internal/domain"
)

// MemoryRepository is an in-memory ObligationRepository with the same
// optimistic write semantics as the Postgres store. Used by tests and local
// wiring.
type MemoryRepository struct {
	mu           sync.RWMutex
	obligations  map[string]domain.Obligation
	transactions map[string][]domain.TransactionRecord
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		obligations:  make(map[string]domain.Obligation),
		transactions: make(map[string][]domain.TransactionRecord),
	}
}

// PutObligation inserts or replaces an obligation unconditionally. Seeding
// helper for intake paths and tests; the engine itself only writes through
// SaveObligation.
func (r *MemoryRepository) PutObligation(o domain.Obligation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obligations[o.ID] = o
}

// AddTransaction appends a transaction record.
func (r *MemoryRepository) AddTransaction(rec domain.TransactionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[rec.ObligationID] = append(r.transactions[rec.ObligationID], rec)
}

// RecordTransaction implements the TransactionWriter used by the
// confirmation receiver.
func (r *MemoryRepository) RecordTransaction(ctx context.Context, rec domain.TransactionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	r.AddTransaction(rec)
	return nil
}

// LoadObligation implements usecase.ObligationRepository.
func (r *MemoryRepository) LoadObligation(ctx context.Context, id string) (domain.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.obligations[id]
	if !ok {
		return domain.Obligation{}, domain.ErrObligationNotFound
	}
	return o, nil
}

// LoadTransactions implements usecase.ObligationRepository.
func (r *MemoryRepository) LoadTransactions(ctx context.Context, obligationID string) ([]domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := r.transactions[obligationID]
	out := make([]domain.TransactionRecord, len(records))
	copy(out, records)
	return out, nil
}

// ListOpenObligations implements usecase.ObligationRepository.
func (r *MemoryRepository) ListOpenObligations(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, o := range r.obligations {
		if !o.Status.Terminal() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SaveObligation implements usecase.ObligationRepository with the optimistic
// status precondition.
func (r *MemoryRepository) SaveObligation(ctx context.Context, o domain.Obligation, expectedStatus domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.obligations[o.ID]
	if !ok {
		return domain.ErrObligationNotFound
	}
	if current.Status != expectedStatus {
		return domain.ErrStaleWrite
	}
	r.obligations[o.ID] = o
	return nil
}
