package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obligation-engine/internal/domain"
)

func writeCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	w := csv.NewWriter(file)
	require.NoError(t, w.WriteAll(rows))
	return path
}

func TestCSVSettlementReader_ReadSettlements(t *testing.T) {
	header := []string{"id", "obligationID", "ownerID", "amount", "reference", "status", "recordedAt"}

	tests := []struct {
		name    string
		rows    [][]string
		want    int
		wantErr bool
	}{
		{
			name: "valid settlement rows",
			rows: [][]string{
				header,
				{"TX-1", "OBL-1", "MBR-1", "5000", "ref-1", "completed", "2025-06-01T10:00:00Z"},
				{"TX-2", "OBL-1", "MBR-1", "7500", "ref-2", "completed", "2025-06-02T11:30:00Z"},
				{"TX-3", "OBL-2", "MBR-2", "2500", "ref-3", "pending", "2025-06-02T12:00:00Z"},
			},
			want: 3,
		},
		{
			name: "empty file with header only",
			rows: [][]string{header},
			want: 0,
		},
		{
			name: "invalid amount",
			rows: [][]string{
				header,
				{"TX-1", "OBL-1", "MBR-1", "fifty", "ref-1", "completed", "2025-06-01T10:00:00Z"},
			},
			wantErr: true,
		},
		{
			name: "invalid timestamp",
			rows: [][]string{
				header,
				{"TX-1", "OBL-1", "MBR-1", "5000", "ref-1", "completed", "June 1st"},
			},
			wantErr: true,
		},
		{
			name: "negative amount rejected by validation",
			rows: [][]string{
				header,
				{"TX-1", "OBL-1", "MBR-1", "-5000", "ref-1", "completed", "2025-06-01T10:00:00Z"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "settlement.csv", tt.rows)
			reader := NewCSVSettlementReader()

			got, err := reader.ReadSettlements(context.Background(), []string{path})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestCSVSettlementReader_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	header := []string{"id", "obligationID", "ownerID", "amount", "reference", "status", "recordedAt"}
	a := writeCSV(t, dir, "batch_a.csv", [][]string{
		header,
		{"TX-1", "OBL-1", "MBR-1", "5000", "ref-1", "completed", "2025-06-01T10:00:00Z"},
	})
	b := writeCSV(t, dir, "batch_b.csv", [][]string{
		header,
		{"TX-2", "OBL-2", "MBR-2", "2500", "ref-2", "completed", "2025-06-03T09:00:00Z"},
	})

	reader := NewCSVSettlementReader()
	got, err := reader.ReadSettlements(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ref-1", got[0].IdempotencyKey)
	assert.Equal(t, domain.TransactionCompleted, got[0].Status)
	assert.Equal(t, int64(2500), got[1].Amount)
}

func TestCSVSettlementReader_MissingFile(t *testing.T) {
	reader := NewCSVSettlementReader()
	_, err := reader.ReadSettlements(context.Background(), []string{"/nonexistent/settlement.csv"})
	assert.Error(t, err)
}
