package domain

import "time"

// StatusChanged is emitted after a persisted status transition. Consumers
// (notifiers, dashboards) receive identifiers only; the engine never formats
// a human-facing message.
type StatusChanged struct {
	EventID      string    `json:"event_id"`
	ObligationID string    `json:"obligation_id"`
	OwnerID      string    `json:"owner_id"`
	From         Status    `json:"from"`
	To           Status    `json:"to"`
	At           time.Time `json:"at"`
}
