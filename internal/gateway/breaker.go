package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"obligation-engine/internal/domain"
	"obligation-engine/pkg/logging"
)

// BreakerConfig configures the circuit breaker around a repository.
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// DefaultBreakerConfig trips after 5 consecutive store failures and probes
// again after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:        "obligation-store",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
	}
}

// ResilientRepository wraps an ObligationRepository with a circuit breaker so
// a struggling store fails fast for the batch sweep instead of stalling every
// worker. Domain outcomes (not found, stale write, malformed) are successes
// as far as the breaker is concerned.
type ResilientRepository struct {
	inner  Repository
	cb     *gobreaker.CircuitBreaker
	logger *logging.Logger
}

// Repository is the full surface the breaker wraps: the engine's read/write
// boundary plus the receiver's transaction insert.
type Repository interface {
	LoadObligation(ctx context.Context, id string) (domain.Obligation, error)
	LoadTransactions(ctx context.Context, obligationID string) ([]domain.TransactionRecord, error)
	ListOpenObligations(ctx context.Context) ([]string, error)
	SaveObligation(ctx context.Context, o domain.Obligation, expectedStatus domain.Status) error
	RecordTransaction(ctx context.Context, rec domain.TransactionRecord) error
}

// NewResilientRepository wraps inner with a circuit breaker.
func NewResilientRepository(inner Repository, cfg BreakerConfig, logger *logging.Logger) *ResilientRepository {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logger.Named("breaker")

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isDomainOutcome(err)
		},
	}

	return &ResilientRepository{
		inner:  inner,
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: log,
	}
}

func isDomainOutcome(err error) bool {
	var malformedO *domain.MalformedObligationError
	var malformedT *domain.MalformedTransactionError
	return errors.Is(err, domain.ErrObligationNotFound) ||
		errors.Is(err, domain.ErrStaleWrite) ||
		errors.As(err, &malformedO) ||
		errors.As(err, &malformedT)
}

// LoadObligation implements usecase.ObligationRepository.
func (r *ResilientRepository) LoadObligation(ctx context.Context, id string) (domain.Obligation, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.inner.LoadObligation(ctx, id)
	})
	if err != nil {
		return domain.Obligation{}, err
	}
	return v.(domain.Obligation), nil
}

// LoadTransactions implements usecase.ObligationRepository.
func (r *ResilientRepository) LoadTransactions(ctx context.Context, obligationID string) ([]domain.TransactionRecord, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.inner.LoadTransactions(ctx, obligationID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.TransactionRecord), nil
}

// ListOpenObligations implements usecase.ObligationRepository.
func (r *ResilientRepository) ListOpenObligations(ctx context.Context) ([]string, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.inner.ListOpenObligations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// SaveObligation implements usecase.ObligationRepository.
func (r *ResilientRepository) SaveObligation(ctx context.Context, o domain.Obligation, expectedStatus domain.Status) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.inner.SaveObligation(ctx, o, expectedStatus)
	})
	return err
}

// RecordTransaction implements the receiver's TransactionWriter.
func (r *ResilientRepository) RecordTransaction(ctx context.Context, rec domain.TransactionRecord) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.inner.RecordTransaction(ctx, rec)
	})
	return err
}
