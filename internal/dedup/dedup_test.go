package dedup_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"obligation-engine/internal/dedup"
	"obligation-engine/internal/domain"
)

func record(id, key string, amount int64, recordedAt time.Time, status domain.TransactionStatus) domain.TransactionRecord {
	return domain.TransactionRecord{
		ID:             id,
		ObligationID:   "OBL-1",
		OwnerID:        "MBR-1",
		Amount:         amount,
		IdempotencyKey: key,
		RecordedAt:     recordedAt,
		Status:         status,
	}
}

func TestDedupe(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		records        []domain.TransactionRecord
		wantCanonical  []string
		wantDuplicates []string
	}{
		{
			name:          "empty input",
			records:       nil,
			wantCanonical: nil,
		},
		{
			name: "retried delivery keeps the earliest record",
			records: []domain.TransactionRecord{
				record("TX-1", "ref-1", 5000, t0, domain.TransactionCompleted),
				record("TX-2", "ref-1", 5000, t0.Add(time.Second), domain.TransactionCompleted),
				record("TX-3", "ref-1", 5000, t0.Add(2*time.Second), domain.TransactionCompleted),
			},
			wantCanonical:  []string{"TX-1"},
			wantDuplicates: []string{"TX-2", "TX-3"},
		},
		{
			name: "timestamp tie broken by lowest id",
			records: []domain.TransactionRecord{
				record("TX-9", "ref-1", 5000, t0, domain.TransactionCompleted),
				record("TX-2", "ref-1", 5000, t0, domain.TransactionCompleted),
			},
			wantCanonical:  []string{"TX-2"},
			wantDuplicates: []string{"TX-9"},
		},
		{
			name: "keyless legacy rows are never grouped",
			records: []domain.TransactionRecord{
				record("TX-1", "", 5000, t0, domain.TransactionCompleted),
				record("TX-2", "", 5000, t0, domain.TransactionCompleted),
			},
			wantCanonical: []string{"TX-1", "TX-2"},
		},
		{
			name: "distinct keys stay independent",
			records: []domain.TransactionRecord{
				record("TX-1", "ref-1", 5000, t0, domain.TransactionCompleted),
				record("TX-2", "ref-2", 7000, t0.Add(time.Second), domain.TransactionCompleted),
				record("TX-3", "ref-2", 7000, t0.Add(2*time.Second), domain.TransactionCompleted),
			},
			wantCanonical:  []string{"TX-1", "TX-2"},
			wantDuplicates: []string{"TX-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, duplicates := dedup.Dedupe(tt.records)
			assert.Equal(t, tt.wantCanonical, ids(canonical))
			assert.Equal(t, tt.wantDuplicates, ids(duplicates))
			assert.Equal(t, len(tt.records), len(canonical)+len(duplicates))
		})
	}
}

func TestDedupe_OrderIndependent(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	a := record("TX-1", "ref-1", 5000, t0, domain.TransactionCompleted)
	b := record("TX-2", "ref-1", 5000, t0.Add(time.Second), domain.TransactionCompleted)
	c := record("TX-3", "ref-1", 5000, t0.Add(2*time.Second), domain.TransactionCompleted)

	orders := [][]domain.TransactionRecord{
		{a, b, c},
		{c, b, a},
		{b, a, c},
		{c, a, b},
	}
	for _, in := range orders {
		canonical, duplicates := dedup.Dedupe(in)
		assert.Equal(t, []string{"TX-1"}, ids(canonical))
		assert.Len(t, duplicates, 2)
	}
}

func TestSumCompleted(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	total, err := dedup.SumCompleted([]domain.TransactionRecord{
		record("TX-1", "ref-1", 5000, t0, domain.TransactionCompleted),
		record("TX-2", "ref-2", 2500, t0, domain.TransactionCompleted),
		record("TX-3", "ref-3", 9999, t0, domain.TransactionPending),
		record("TX-4", "ref-4", 9999, t0, domain.TransactionFailed),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7500), total)
}

func TestSumCompleted_MalformedAmount(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	_, err := dedup.SumCompleted([]domain.TransactionRecord{
		record("TX-1", "ref-1", -5000, t0, domain.TransactionCompleted),
	})
	var malformed *domain.MalformedTransactionError
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, "TX-1", malformed.TransactionID)
}

func TestSortByRecordedAt(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.TransactionRecord{
		record("TX-3", "", 100, t0.Add(time.Minute), domain.TransactionCompleted),
		record("TX-2", "", 100, t0, domain.TransactionCompleted),
		record("TX-1", "", 100, t0, domain.TransactionCompleted),
	}

	dedup.SortByRecordedAt(records)
	assert.Equal(t, []string{"TX-1", "TX-2", "TX-3"}, ids(records))
}

func ids(records []domain.TransactionRecord) []string {
	if len(records) == 0 {
		return nil
	}
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
