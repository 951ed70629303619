package domain

import "time"

// AmountBreakdown is the authoritative amount owed or funded for one
// obligation at a given instant. All amounts are integer minor currency
// units.
type AmountBreakdown struct {
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	// Penalty is the compounded overdue penalty for loans. Zero for savings.
	Penalty int64 `json:"penalty"`
	// LostInterest is the earned interest forfeited by an overdue savings
	// plan. It is never part of TotalDue. Zero for loans.
	LostInterest int64 `json:"lost_interest"`
	TotalDue     int64 `json:"total_due"`
	DaysOverdue  int   `json:"days_overdue"`
}

// ReconcileResult is the outcome of reconciling a single obligation.
type ReconcileResult struct {
	ObligationID string          `json:"obligation_id"`
	Breakdown    AmountBreakdown `json:"breakdown"`
	TotalPaid    int64           `json:"total_paid"`
	Verdict      Verdict         `json:"verdict"`
	StatusBefore Status          `json:"status_before"`
	StatusAfter  Status          `json:"status_after"`
	// Wrote reports whether a persisted write was issued. Repeated
	// reconciliation of an already settled obligation keeps it false.
	Wrote           bool `json:"wrote"`
	DuplicatesFound int  `json:"duplicates_found"`
}

// SweepError records one obligation that could not be reconciled during a
// batch sweep. The sweep continues past it.
type SweepError struct {
	ObligationID string `json:"obligation_id"`
	Err          string `json:"error"`
}

// SweepReport summarizes one batch sweep over all open obligations.
type SweepReport struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Processed     int `json:"processed"`
	Completed     int `json:"completed"`
	MarkedOverdue int `json:"marked_overdue"`
	Interrupted   int `json:"interrupted"`
	StaleWrites   int `json:"stale_writes"`

	Errors []SweepError `json:"errors,omitempty"`
}
