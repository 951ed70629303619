// Package penalty computes compounded overdue penalties. It is the single
// source of truth for penalty amounts: a persisted overdue status flag alone
// never implies a nonzero penalty.
package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodDays is the length of one penalty accrual block. Only complete
// blocks accrue; 1 to 4 days overdue accrue nothing.
const PeriodDays = 5

// Accrual is the outcome of one penalty computation.
type Accrual struct {
	DaysOverdue int
	Periods     int
	// PenaltyAmount is in integer minor currency units, rounded once with
	// bankers rounding at the end of the compounding computation.
	PenaltyAmount int64
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Accrue computes days overdue and the compounded penalty for an obligation
// at the given instant. Both now and the due date are truncated to midnight
// UTC before subtracting so sub-day drift never changes the day count.
func Accrue(principal, interestRatePercent int64, anchor time.Time, durationDays int, dailyPenaltyRatePercent int64, now time.Time) Accrual {
	due := midnight(anchor.AddDate(0, 0, durationDays))
	today := midnight(now)

	daysOverdue := int(today.Sub(due).Hours() / 24)
	if daysOverdue < 0 {
		daysOverdue = 0
	}

	acc := Accrual{
		DaysOverdue: daysOverdue,
		Periods:     daysOverdue / PeriodDays,
	}
	if acc.Periods == 0 || dailyPenaltyRatePercent == 0 {
		return acc
	}

	// base = principal + interest; the penalty compounds on the full amount
	// owed, not the principal alone.
	p := decimal.NewFromInt(principal)
	base := p.Add(p.Mul(decimal.NewFromInt(interestRatePercent)).Div(hundred))

	factor := one.Add(decimal.NewFromInt(dailyPenaltyRatePercent).Div(hundred)).
		Pow(decimal.NewFromInt(int64(acc.Periods)))

	acc.PenaltyAmount = base.Mul(factor.Sub(one)).RoundBank(0).IntPart()
	return acc
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
