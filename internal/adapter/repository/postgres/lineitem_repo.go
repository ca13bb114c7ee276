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

// LineItemRepository implements usecase.LineItemRepository.
type LineItemRepository struct {
	pool *pgxpool.Pool
}

// NewLineItemRepository creates a new LineItemRepository.
func NewLineItemRepository(pool *pgxpool.Pool) *LineItemRepository {
	return &LineItemRepository{pool: pool}
}

const lineItemColumns = `id, transaction_id, transaction_kind, product_id, quantity, unit_price, status, created_at, updated_at`

// Create inserts a new line item inside the given transaction.
func (r *LineItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.LineItem) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO line_items (`+lineItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID,
		item.TransactionID,
		string(item.TransactionKind),
		item.ProductID,
		item.Quantity,
		decimalToNumeric(item.UnitPrice),
		string(item.Status),
		timeToPgTimestamptz(item.CreatedAt),
		timeToPgTimestamptz(item.UpdatedAt),
	)

	return err
}

// GetByID retrieves a line item by ID.
func (r *LineItemRepository) GetByID(ctx context.Context, id string) (*domain.LineItem, error) {
	return scanLineItem(r.pool.QueryRow(ctx, `
		SELECT `+lineItemColumns+` FROM line_items WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a line item by ID with a FOR UPDATE lock.
func (r *LineItemRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LineItem, error) {
	return scanLineItem(txQuerier(tx).QueryRow(ctx, `
		SELECT `+lineItemColumns+` FROM line_items WHERE id = $1 FOR UPDATE`, id))
}

// UpdateApplied rewrites a line item's quantity, price and status in one
// statement, inside the given transaction.
func (r *LineItemRepository) UpdateApplied(ctx context.Context, tx usecase.Transaction, id string, quantity int64, unitPrice decimal.Decimal, status domain.LineItemStatus, updatedAt time.Time) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE line_items
		SET quantity = $2, unit_price = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		id, quantity, decimalToNumeric(unitPrice), string(status), timeToPgTimestamptz(updatedAt),
	)

	return err
}

// UpdateStatus updates a line item's status inside the given transaction.
func (r *LineItemRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.LineItemStatus, updatedAt time.Time) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE line_items SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt),
	)

	return err
}

// ListByTransaction lists a transaction's line items in creation order.
func (r *LineItemRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.LineItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+lineItemColumns+` FROM line_items
		WHERE transaction_id = $1
		ORDER BY created_at, id`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.LineItem, 0)
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// SumStockDeltaByProduct sums the signed quantities of every line item
// with applied effect referencing the product. Sales subtract, purchases
// add.
func (r *LineItemRepository) SumStockDeltaByProduct(ctx context.Context, productID string) (int64, error) {
	var sum int64

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN transaction_kind = 'purchase' THEN quantity ELSE -quantity END), 0)
		FROM line_items
		WHERE product_id = $1 AND status IN ('applied', 'reapplied')`,
		productID,
	).Scan(&sum)

	return sum, err
}

// SumAmountByTransaction sums quantity times unit price over the
// transaction's line items with applied effect.
func (r *LineItemRepository) SumAmountByTransaction(ctx context.Context, transactionID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity * unit_price), 0)
		FROM line_items
		WHERE transaction_id = $1 AND status IN ('applied', 'reapplied')`,
		transactionID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanLineItem(row pgx.Row) (*domain.LineItem, error) {
	var (
		item      domain.LineItem
		kind      string
		unitPrice pgtype.Numeric
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&item.ID,
		&item.TransactionID,
		&kind,
		&item.ProductID,
		&item.Quantity,
		&unitPrice,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLineItemNotFound
		}

		return nil, err
	}

	item.TransactionKind = domain.TransactionKind(kind)
	item.UnitPrice = numericToDecimal(unitPrice)
	item.Status = domain.LineItemStatus(status)
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}
