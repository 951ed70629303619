package domain

import "time"

// Kind distinguishes the two obligation families the engine reconciles.
type Kind string

const (
	KindLoan    Kind = "loan"
	KindSavings Kind = "savings"
)

// Status is the persisted lifecycle state of an obligation.
type Status string

const (
	StatusPending           Status = "pending"
	StatusApproved          Status = "approved"
	StatusActive            Status = "active"
	StatusOverdue           Status = "overdue"
	StatusCompleted         Status = "completed"
	StatusRejected          Status = "rejected"
	StatusWithdrawalPending Status = "withdrawal_pending"
	StatusInterrupted       Status = "interrupted"
)

// Terminal reports whether no further automatic transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Verdict is the reconciler's classification of an obligation's payment state.
type Verdict string

const (
	VerdictFullySatisfied     Verdict = "fully_satisfied"
	VerdictPartiallySatisfied Verdict = "partially_satisfied"
	VerdictOverdue            Verdict = "overdue"
)

const (
	// DefaultDailyPenaltyRatePercent applies per complete 5-day overdue period.
	DefaultDailyPenaltyRatePercent int64 = 2

	// DefaultToleranceMinorUnits absorbs rounding drift between the computed
	// total and the summed payments.
	DefaultToleranceMinorUnits int64 = 10

	// SavingsInterruptionThresholdDays is the overdue streak after which a
	// savings plan is suspended.
	SavingsInterruptionThresholdDays = 7
)

// Obligation generalizes a loan to repay and a savings plan to fund. All
// monetary fields are integer minor currency units.
type Obligation struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Kind    Kind   `json:"kind"`

	Principal           int64 `json:"principal"`
	InterestRatePercent int64 `json:"interest_rate_percent"`
	// DurationDays is always in days, despite legacy column names that
	// suggest months.
	DurationDays int `json:"duration_days"`
	// AnchorTimestamp is the instant the due date is computed from: loan
	// approval time, or savings plan start time.
	AnchorTimestamp         time.Time `json:"anchor_timestamp"`
	DailyPenaltyRatePercent int64     `json:"daily_penalty_rate_percent"`
	ToleranceMinorUnits     int64     `json:"tolerance_minor_units"`

	Status Status `json:"status"`

	// Fields below are owned by the reconciliation engine; everything above
	// is written by the intake process and read-only here.
	Penalty                  int64     `json:"penalty"`
	DaysOverdue              int       `json:"days_overdue"`
	IsOverdue                bool      `json:"is_overdue"`
	LastPenaltyCalculationAt time.Time `json:"last_penalty_calculation_at"`
}

// Validate checks the invariants every obligation must satisfy before it can
// be reconciled. Violations come back as a *MalformedObligationError so batch
// callers can report them without aborting the run.
func (o Obligation) Validate() error {
	switch {
	case o.ID == "":
		return &MalformedObligationError{ObligationID: o.ID, Field: "id", Reason: "must not be empty"}
	case o.Kind != KindLoan && o.Kind != KindSavings:
		return &MalformedObligationError{ObligationID: o.ID, Field: "kind", Reason: "unknown kind " + string(o.Kind)}
	case o.Principal <= 0:
		return &MalformedObligationError{ObligationID: o.ID, Field: "principal", Reason: "must be positive"}
	case o.InterestRatePercent < 0 || o.InterestRatePercent > 100:
		return &MalformedObligationError{ObligationID: o.ID, Field: "interest_rate_percent", Reason: "must be between 0 and 100"}
	case o.DurationDays <= 0:
		return &MalformedObligationError{ObligationID: o.ID, Field: "duration_days", Reason: "must be positive"}
	case o.AnchorTimestamp.IsZero():
		return &MalformedObligationError{ObligationID: o.ID, Field: "anchor_timestamp", Reason: "must be set"}
	case o.DailyPenaltyRatePercent < 0:
		return &MalformedObligationError{ObligationID: o.ID, Field: "daily_penalty_rate_percent", Reason: "must not be negative"}
	case o.ToleranceMinorUnits < 0:
		return &MalformedObligationError{ObligationID: o.ID, Field: "tolerance_minor_units", Reason: "must not be negative"}
	}

	switch o.Status {
	case StatusPending, StatusApproved, StatusActive, StatusOverdue,
		StatusCompleted, StatusRejected, StatusWithdrawalPending, StatusInterrupted:
	default:
		return &MalformedObligationError{ObligationID: o.ID, Field: "status", Reason: "unknown status " + string(o.Status)}
	}

	return nil
}

// DueDate is the calendar due date derived from the anchor and duration.
func (o Obligation) DueDate() time.Time {
	return o.AnchorTimestamp.AddDate(0, 0, o.DurationDays)
}
