package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"obligation-engine/internal/domain"
)

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DefaultPostgresConfig returns the local development configuration.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "obligations_db",
		SSLMode:  "disable",
	}
}

// PostgresRepository implements usecase.ObligationRepository on PostgreSQL.
// SaveObligation uses a conditional UPDATE as the optimistic precondition, so
// overlapping sweeps and event-driven reconciles never clobber each other.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a connection pool, verifies connectivity and
// ensures the schema exists.
func NewPostgresRepository(cfg PostgresConfig) (*PostgresRepository, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	repo := &PostgresRepository{db: db}
	if err := repo.initTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init tables: %w", err)
	}
	return repo, nil
}

func (r *PostgresRepository) initTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS obligations (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			principal BIGINT NOT NULL,
			interest_rate_percent BIGINT NOT NULL,
			duration_days INTEGER NOT NULL,
			anchor_timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			daily_penalty_rate_percent BIGINT NOT NULL DEFAULT 2,
			tolerance_minor_units BIGINT NOT NULL DEFAULT 10,
			status TEXT NOT NULL,
			penalty BIGINT NOT NULL DEFAULT 0,
			days_overdue INTEGER NOT NULL DEFAULT 0,
			is_overdue BOOLEAN NOT NULL DEFAULT FALSE,
			last_penalty_calculation_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obligations_status ON obligations(status)`,
		`CREATE TABLE IF NOT EXISTS transaction_records (
			id TEXT PRIMARY KEY,
			obligation_id TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			amount BIGINT NOT NULL,
			idempotency_key TEXT,
			recorded_at TIMESTAMP WITH TIME ZONE NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_records_obligation_id ON transaction_records(obligation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transaction_records_idempotency_key ON transaction_records(idempotency_key)`,
	}

	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// LoadObligation implements usecase.ObligationRepository.
func (r *PostgresRepository) LoadObligation(ctx context.Context, id string) (domain.Obligation, error) {
	const query = `SELECT id, owner_id, kind, principal, interest_rate_percent, duration_days,
		anchor_timestamp, daily_penalty_rate_percent, tolerance_minor_units, status,
		penalty, days_overdue, is_overdue, last_penalty_calculation_at
		FROM obligations WHERE id = $1`

	var o domain.Obligation
	var lastCalc sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.OwnerID, &o.Kind, &o.Principal, &o.InterestRatePercent, &o.DurationDays,
		&o.AnchorTimestamp, &o.DailyPenaltyRatePercent, &o.ToleranceMinorUnits, &o.Status,
		&o.Penalty, &o.DaysOverdue, &o.IsOverdue, &lastCalc,
	)
	if err == sql.ErrNoRows {
		return domain.Obligation{}, domain.ErrObligationNotFound
	}
	if err != nil {
		return domain.Obligation{}, fmt.Errorf("failed to load obligation %s: %w", id, err)
	}
	if lastCalc.Valid {
		o.LastPenaltyCalculationAt = lastCalc.Time
	}
	return o, nil
}

// LoadTransactions implements usecase.ObligationRepository.
func (r *PostgresRepository) LoadTransactions(ctx context.Context, obligationID string) ([]domain.TransactionRecord, error) {
	const query = `SELECT id, obligation_id, owner_id, amount, COALESCE(idempotency_key, ''), recorded_at, status
		FROM transaction_records WHERE obligation_id = $1 ORDER BY recorded_at, id`

	rows, err := r.db.QueryContext(ctx, query, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w", obligationID, err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		if err := rows.Scan(&rec.ID, &rec.ObligationID, &rec.OwnerID, &rec.Amount,
			&rec.IdempotencyKey, &rec.RecordedAt, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListOpenObligations implements usecase.ObligationRepository.
func (r *PostgresRepository) ListOpenObligations(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM obligations WHERE status NOT IN ($1, $2)`

	rows, err := r.db.QueryContext(ctx, query, domain.StatusCompleted, domain.StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to list open obligations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan obligation id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveObligation implements the optimistic precondition: the UPDATE lands
// only if the stored status is still expectedStatus. Zero affected rows on
// an existing obligation means a concurrent writer already advanced it.
func (r *PostgresRepository) SaveObligation(ctx context.Context, o domain.Obligation, expectedStatus domain.Status) error {
	const query = `UPDATE obligations
		SET status = $1, penalty = $2, days_overdue = $3, is_overdue = $4, last_penalty_calculation_at = $5
		WHERE id = $6 AND status = $7`

	res, err := r.db.ExecContext(ctx, query,
		o.Status, o.Penalty, o.DaysOverdue, o.IsOverdue, o.LastPenaltyCalculationAt,
		o.ID, expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to save obligation %s: %w", o.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM obligations WHERE id = $1)`, o.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check obligation %s: %w", o.ID, err)
		}
		if !exists {
			return domain.ErrObligationNotFound
		}
		return domain.ErrStaleWrite
	}
	return nil
}

// RecordTransaction inserts a gateway confirmation. Used by the confirmation
// receiver, not by the engine itself.
func (r *PostgresRepository) RecordTransaction(ctx context.Context, rec domain.TransactionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	const query = `INSERT INTO transaction_records
		(id, obligation_id, owner_id, amount, idempotency_key, recorded_at, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`

	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.ObligationID, rec.OwnerID, rec.Amount, rec.IdempotencyKey,
		rec.RecordedAt, rec.Status,
	); err != nil {
		return fmt.Errorf("failed to record transaction %s: %w", rec.ID, err)
	}
	return nil
}
