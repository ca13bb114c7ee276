package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. Prevents long-running ledger units from blocking rows.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// ProductCacheTTL is how long product reads may be served from cache.
	ProductCacheTTL = 30 * time.Second
)
