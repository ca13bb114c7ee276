package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, kind, counterparty_id, total, created_at, updated_at`

// Create creates a new transaction with its opening total.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		txn.ID,
		string(txn.Kind),
		txn.CounterpartyID,
		decimalToNumeric(txn.Total),
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	return scanTransaction(txQuerier(tx).QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id))
}

// UpdateTotal updates the accumulated total of a transaction.
func (r *TransactionRepository) UpdateTotal(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal, updatedAt time.Time) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE transactions SET total = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(total), timeToPgTimestamptz(updatedAt),
	)

	return err
}

// List lists transactions, filtered by kind when one is given.
func (r *TransactionRepository) List(ctx context.Context, kind domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`,
		string(kind), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		kind      string
		total     pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&kind,
		&txn.CounterpartyID,
		&total,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Kind = domain.TransactionKind(kind)
	txn.Total = numericToDecimal(total)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time

	return &txn, nil
}
