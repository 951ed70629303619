package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obligation-engine/internal/domain"
)

func sampleObligation(id string, status domain.Status) domain.Obligation {
	return domain.Obligation{
		ID:                      id,
		OwnerID:                 "MBR-1",
		Kind:                    domain.KindLoan,
		Principal:               10000,
		InterestRatePercent:     25,
		DurationDays:            30,
		AnchorTimestamp:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DailyPenaltyRatePercent: domain.DefaultDailyPenaltyRatePercent,
		ToleranceMinorUnits:     domain.DefaultToleranceMinorUnits,
		Status:                  status,
	}
}

func TestMemoryRepository_SaveObligation_Precondition(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.PutObligation(sampleObligation("OBL-1", domain.StatusActive))

	updated := sampleObligation("OBL-1", domain.StatusOverdue)
	require.NoError(t, repo.SaveObligation(ctx, updated, domain.StatusActive))

	got, err := repo.LoadObligation(ctx, "OBL-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, got.Status)

	// A writer still assuming the old status must be refused.
	stale := sampleObligation("OBL-1", domain.StatusCompleted)
	err = repo.SaveObligation(ctx, stale, domain.StatusActive)
	assert.ErrorIs(t, err, domain.ErrStaleWrite)

	got, err = repo.LoadObligation(ctx, "OBL-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, got.Status)
}

func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.LoadObligation(ctx, "OBL-404")
	assert.ErrorIs(t, err, domain.ErrObligationNotFound)

	err = repo.SaveObligation(ctx, sampleObligation("OBL-404", domain.StatusActive), domain.StatusActive)
	assert.ErrorIs(t, err, domain.ErrObligationNotFound)
}

func TestMemoryRepository_ListOpenObligations(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.PutObligation(sampleObligation("OBL-active", domain.StatusActive))
	repo.PutObligation(sampleObligation("OBL-overdue", domain.StatusOverdue))
	repo.PutObligation(sampleObligation("OBL-done", domain.StatusCompleted))
	repo.PutObligation(sampleObligation("OBL-rejected", domain.StatusRejected))

	ids, err := repo.ListOpenObligations(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"OBL-active", "OBL-overdue"}, ids)
}

func TestMemoryRepository_RecordTransaction(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	rec := domain.TransactionRecord{
		ID:             "TX-1",
		ObligationID:   "OBL-1",
		OwnerID:        "MBR-1",
		Amount:         5000,
		IdempotencyKey: "ref-1",
		RecordedAt:     time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		Status:         domain.TransactionCompleted,
	}
	require.NoError(t, repo.RecordTransaction(ctx, rec))

	bad := rec
	bad.ID = "TX-2"
	bad.Amount = 0
	var malformed *domain.MalformedTransactionError
	assert.ErrorAs(t, repo.RecordTransaction(ctx, bad), &malformed)

	records, err := repo.LoadTransactions(ctx, "OBL-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
