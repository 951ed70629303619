package rate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"obligation-engine/internal/domain"
	"obligation-engine/internal/rate"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name         string
		policy       rate.Policy
		durationDays int
		principal    int64
		want         int64
	}{
		{name: "fixed table 5 days", policy: rate.PolicyFixedTable, durationDays: 5, principal: 10000, want: 6},
		{name: "fixed table 10 days", policy: rate.PolicyFixedTable, durationDays: 10, principal: 10000, want: 10},
		{name: "fixed table 15 days", policy: rate.PolicyFixedTable, durationDays: 15, principal: 10000, want: 15},
		{name: "fixed table 25 days", policy: rate.PolicyFixedTable, durationDays: 25, principal: 10000, want: 22},
		{name: "fixed table 30 days", policy: rate.PolicyFixedTable, durationDays: 30, principal: 10000, want: 25},
		{name: "fixed table ignores principal", policy: rate.PolicyFixedTable, durationDays: 30, principal: 50000, want: 25},
		{name: "unknown tier falls back to default", policy: rate.PolicyFixedTable, durationDays: 7, principal: 10000, want: rate.DefaultRatePercent},
		{name: "principal tiered 25 days flat", policy: rate.PolicyPrincipalTiered, durationDays: 25, principal: 10000, want: 25},
		{name: "principal tiered 30 days large principal", policy: rate.PolicyPrincipalTiered, durationDays: 30, principal: 20000, want: 25},
		{name: "principal tiered 30 days small principal", policy: rate.PolicyPrincipalTiered, durationDays: 30, principal: 19999, want: 30},
		{name: "principal tiered other tiers use fixed table", policy: rate.PolicyPrincipalTiered, durationDays: 10, principal: 10000, want: 10},
		{name: "principal tiered unknown tier falls back", policy: rate.PolicyPrincipalTiered, durationDays: 60, principal: 10000, want: rate.DefaultRatePercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rate.NewResolver(tt.policy)
			got, err := r.Resolve(tt.durationDays, tt.principal)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_WithoutFallback(t *testing.T) {
	r := rate.NewResolver(rate.PolicyFixedTable, rate.WithoutFallback())

	got, err := r.Resolve(30, 10000)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), got)

	_, err = r.Resolve(7, 10000)
	var tierErr *domain.UnresolvedRateTierError
	assert.ErrorAs(t, err, &tierErr)
	assert.Equal(t, 7, tierErr.DurationDays)
}
