package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/infrastructure/metrics"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Retrier implements usecase.Retrier with exponential backoff. Retryable
// conflicts that survive all attempts surface as ErrConcurrentConflict.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewRetrier creates a new PostgreSQL retrier with default settings.
// metrics may be nil.
func NewRetrier(logger zerolog.Logger, m *metrics.Metrics) *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          logger,
		metrics:         m,
	}
}

// Retry executes an operation with exponential backoff on retryable errors.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	err := backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(fmt.Errorf("%w: %w", domain.ErrConcurrentConflict, err))
		}

		if r.metrics != nil {
			r.metrics.LedgerRetries.Inc()
		}

		r.logger.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("retryable database error, retrying")

		return err
	}, backoff.WithContext(b, ctx))

	// Backoff gave up between attempts with a retryable error still
	// pending: classify it the same way as exhausted retries.
	if err != nil && isRetryableError(err) && !errors.Is(err, domain.ErrConcurrentConflict) {
		return fmt.Errorf("%w: %w", domain.ErrConcurrentConflict, err)
	}

	return err
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
