// Package amount composes rate resolution and penalty accrual into the
// authoritative amount owed or funded for one obligation.
package amount

import (
	"time"

	"github.com/shopspring/decimal"

	"obligation-engine/internal/domain"
	"obligation-engine/internal/penalty"
	"obligation-engine/internal/rate"
)

// Calculator produces amount breakdowns. The interest rate stamped on an
// obligation at approval is authoritative; the resolver is consulted only
// for legacy rows approved before rates were stamped.
type Calculator struct {
	rates *rate.Resolver
}

// NewCalculator creates a calculator backed by the given rate resolver.
func NewCalculator(rates *rate.Resolver) *Calculator {
	return &Calculator{rates: rates}
}

// ResolveRate returns the rate an obligation would be stamped with at
// approval time.
func (c *Calculator) ResolveRate(durationDays int, principal int64) (int64, error) {
	return c.rates.Resolve(durationDays, principal)
}

// Breakdown computes the full amount breakdown for an obligation at the
// given instant. For loans the penalty is payable and part of TotalDue; for
// savings plans the equivalent accrual only reduces earned interest and is
// reported as LostInterest.
func (c *Calculator) Breakdown(o domain.Obligation, now time.Time) (domain.AmountBreakdown, error) {
	if err := o.Validate(); err != nil {
		return domain.AmountBreakdown{}, err
	}

	pct := o.InterestRatePercent
	if pct == 0 {
		// Legacy rows carry no stamped rate; resolve from the tier table.
		resolved, err := c.rates.Resolve(o.DurationDays, o.Principal)
		if err != nil {
			return domain.AmountBreakdown{}, err
		}
		pct = resolved
	}

	interest := interestOn(o.Principal, pct)

	// Completed and rejected obligations stop accruing. A confirmation
	// retried after the due date must see the amounts frozen at settlement,
	// not a penalty that grew after the books were closed.
	var acc penalty.Accrual
	if !o.Status.Terminal() {
		acc = penalty.Accrue(o.Principal, pct, o.AnchorTimestamp, o.DurationDays, o.DailyPenaltyRatePercent, now)
	}

	b := domain.AmountBreakdown{
		Principal:   o.Principal,
		Interest:    interest,
		DaysOverdue: acc.DaysOverdue,
	}

	switch o.Kind {
	case domain.KindSavings:
		// An overdue plan forfeits earned interest instead of owing a
		// penalty. The forfeit is capped at the interest itself.
		lost := acc.PenaltyAmount
		if lost > interest {
			lost = interest
		}
		b.LostInterest = lost
		b.TotalDue = o.Principal
	default:
		b.Penalty = acc.PenaltyAmount
		b.TotalDue = o.Principal + interest + acc.PenaltyAmount
	}

	return b, nil
}

func interestOn(principal, pct int64) int64 {
	return decimal.NewFromInt(principal).
		Mul(decimal.NewFromInt(pct)).
		Div(decimal.NewFromInt(100)).
		RoundBank(0).
		IntPart()
}
