package domain

import "time"

// TransactionStatus tags a transaction record's settlement state. Only
// completed records count toward an obligation's paid total.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// TransactionRecord is one repayment or deposit event as delivered by the
// payment gateway. The same underlying payment may arrive several times
// (webhook retry, client polling, manual import); retried deliveries share an
// IdempotencyKey.
type TransactionRecord struct {
	ID           string `json:"id"`
	ObligationID string `json:"obligation_id"`
	OwnerID      string `json:"owner_id"`
	// Amount is in integer minor currency units and always positive.
	Amount int64 `json:"amount"`
	// IdempotencyKey is the gateway's external reference. Empty for legacy
	// rows imported before the gateway issued references; such rows are
	// never grouped during deduplication.
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	RecordedAt     time.Time         `json:"recorded_at"`
	Status         TransactionStatus `json:"status"`
}

// Validate checks the record invariants. A violation is reported as a
// *MalformedTransactionError scoped to the record's obligation.
func (t TransactionRecord) Validate() error {
	switch {
	case t.ID == "":
		return &MalformedTransactionError{TransactionID: t.ID, ObligationID: t.ObligationID, Reason: "id must not be empty"}
	case t.ObligationID == "":
		return &MalformedTransactionError{TransactionID: t.ID, ObligationID: t.ObligationID, Reason: "obligation id must not be empty"}
	case t.Amount <= 0:
		return &MalformedTransactionError{TransactionID: t.ID, ObligationID: t.ObligationID, Reason: "amount must be positive"}
	case t.RecordedAt.IsZero():
		return &MalformedTransactionError{TransactionID: t.ID, ObligationID: t.ObligationID, Reason: "recorded_at must be set"}
	}

	switch t.Status {
	case TransactionCompleted, TransactionPending, TransactionFailed:
	default:
		return &MalformedTransactionError{TransactionID: t.ID, ObligationID: t.ObligationID, Reason: "unknown status " + string(t.Status)}
	}

	return nil
}
