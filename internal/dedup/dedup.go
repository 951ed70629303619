// Package dedup collapses duplicate gateway deliveries of the same payment
// and aggregates the surviving records. Duplicates are reported, never
// deleted; the raw rows stay in the store for audit.
package dedup

import (
	"sort"

	"obligation-engine/internal/domain"
)

// Dedupe groups records by idempotency key and selects one canonical record
// per group. Records without a key are their own singleton group and always
// canonical. Selection is independent of input order: within a group the
// earliest RecordedAt wins, ties broken by lowest ID. The union of the two
// returned slices is exactly the input.
func Dedupe(records []domain.TransactionRecord) (canonical, duplicates []domain.TransactionRecord) {
	winners := make(map[string]domain.TransactionRecord)
	for _, rec := range records {
		if rec.IdempotencyKey == "" {
			continue
		}
		best, seen := winners[rec.IdempotencyKey]
		if !seen || earlier(rec, best) {
			winners[rec.IdempotencyKey] = rec
		}
	}

	for _, rec := range records {
		if rec.IdempotencyKey == "" || winners[rec.IdempotencyKey].ID == rec.ID {
			canonical = append(canonical, rec)
		} else {
			duplicates = append(duplicates, rec)
		}
	}
	return canonical, duplicates
}

// earlier reports whether a should win over b as the canonical record. The
// earliest delivery represents the original, non-retried one.
func earlier(a, b domain.TransactionRecord) bool {
	if !a.RecordedAt.Equal(b.RecordedAt) {
		return a.RecordedAt.Before(b.RecordedAt)
	}
	return a.ID < b.ID
}

// SumCompleted sums the amounts of completed records. Pending and failed
// records never count. A non-positive amount is reported as malformed and
// stops the aggregation for this obligation only.
func SumCompleted(records []domain.TransactionRecord) (int64, error) {
	var total int64
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return 0, err
		}
		if rec.Status == domain.TransactionCompleted {
			total += rec.Amount
		}
	}
	return total, nil
}

// SortByRecordedAt orders records chronologically, ties by ID. Used by
// reporting paths that want a stable listing of duplicate deliveries.
func SortByRecordedAt(records []domain.TransactionRecord) {
	sort.Slice(records, func(i, j int) bool {
		return earlier(records[i], records[j])
	})
}
