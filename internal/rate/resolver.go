package rate

import (
	"obligation-engine/internal/domain"
)

// Policy selects which of the historical rate rule sets the resolver applies.
// The two sets disagree on the 25 and 30 day tiers and must never be merged.
type Policy string

const (
	// PolicyFixedTable is the canonical rule set: the rate depends on the
	// duration tier only.
	PolicyFixedTable Policy = "fixed_table"

	// PolicyPrincipalTiered is the alternative rule set found in the intake
	// scripts: the 30-day tier depends on the principal, and the 25-day
	// tier is a flat 25%.
	PolicyPrincipalTiered Policy = "principal_tiered"
)

// DefaultRatePercent is applied to durations outside every tier. Rate
// resolution never blocks an application on an unknown tier.
const DefaultRatePercent int64 = 25

// principalTierCutoff is the 30-day principal boundary of the alternative
// rule set, in minor currency units.
const principalTierCutoff int64 = 20000

var fixedTable = map[int]int64{
	5:  6,
	10: 10,
	15: 15,
	25: 22,
	30: 25,
}

// Resolver maps a requested duration and principal to an interest rate
// percentage. It is pure and safe for concurrent use.
type Resolver struct {
	policy Policy
	// strict disables the default-rate fallback so an unknown tier is
	// reported instead of silently priced.
	strict bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithoutFallback makes unknown tiers an error instead of the default rate.
// Used by audit tooling; production resolution keeps the fallback.
func WithoutFallback() Option {
	return func(r *Resolver) { r.strict = true }
}

// NewResolver creates a resolver for the given policy. An unrecognized
// policy resolves like PolicyFixedTable.
func NewResolver(policy Policy, opts ...Option) *Resolver {
	r := &Resolver{policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the interest rate percent for a duration and principal.
// The principal participates only under PolicyPrincipalTiered.
func (r *Resolver) Resolve(durationDays int, principal int64) (int64, error) {
	if r.policy == PolicyPrincipalTiered {
		switch durationDays {
		case 25:
			return 25, nil
		case 30:
			if principal >= principalTierCutoff {
				return 25, nil
			}
			return 30, nil
		}
	}

	if pct, ok := fixedTable[durationDays]; ok {
		return pct, nil
	}

	if r.strict {
		return 0, &domain.UnresolvedRateTierError{DurationDays: durationDays}
	}
	return DefaultRatePercent, nil
}
