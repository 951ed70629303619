package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"obligation-engine/internal/domain"
)

// CSVSettlementReader parses the payment gateway's settlement export files.
// The export is the manual reconciliation path: rows it yields become
// TransactionRecords carrying the gateway reference as idempotency key, so a
// row already delivered by webhook collapses during deduplication instead of
// double counting.
type CSVSettlementReader struct{}

// NewCSVSettlementReader creates a new reader instance.
func NewCSVSettlementReader() *CSVSettlementReader {
	return &CSVSettlementReader{}
}

// ReadSettlements reads and parses one or more settlement export files.
// Expected columns: id, obligationID, ownerID, amount, reference, status,
// recordedAt (RFC 3339).
func (r *CSVSettlementReader) ReadSettlements(ctx context.Context, paths []string) ([]domain.TransactionRecord, error) {
	var allRecords []domain.TransactionRecord

	for _, path := range paths {
		records, err := r.readFile(path)
		if err != nil {
			return nil, err
		}
		allRecords = append(allRecords, records...)
	}
	return allRecords, nil
}

func (r *CSVSettlementReader) readFile(path string) ([]domain.TransactionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settlement export %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	var records []domain.TransactionRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		amount, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse amount '%s': %w", row[3], err)
		}

		recordedAt, err := time.Parse(time.RFC3339, row[6])
		if err != nil {
			return nil, fmt.Errorf("could not parse recordedAt '%s': %w", row[6], err)
		}

		rec := domain.TransactionRecord{
			ID:             row[0],
			ObligationID:   row[1],
			OwnerID:        row[2],
			Amount:         amount,
			IdempotencyKey: row[4],
			Status:         domain.TransactionStatus(row[5]),
			RecordedAt:     recordedAt,
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid row in %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
