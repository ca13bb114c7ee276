package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, description, category_id, selling_price, cost_price, stock_quantity, initial_stock, active, created_at, updated_at`

// Create creates a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		product.ID,
		product.Name,
		product.Description,
		product.CategoryID,
		decimalToNumeric(product.SellingPrice),
		decimalToNumeric(product.CostPrice),
		product.StockQuantity,
		product.InitialStock,
		product.Active,
		timeToPgTimestamptz(product.CreatedAt),
		timeToPgTimestamptz(product.UpdatedAt),
	)

	return err
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a product by ID with a FOR UPDATE lock.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error) {
	return scanProduct(txQuerier(tx).QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
}

// UpdateStock updates the stock quantity of a product.
func (r *ProductRepository) UpdateStock(ctx context.Context, tx usecase.Transaction, id string, stock int64, updatedAt time.Time) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE products SET stock_quantity = $2, updated_at = $3 WHERE id = $1`,
		id, stock, timeToPgTimestamptz(updatedAt),
	)

	return err
}

// Update updates a product's catalog fields. Stock and the initial
// baseline are excluded: they belong to the ledger.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, category_id = $4, selling_price = $5,
		    cost_price = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		product.ID,
		product.Name,
		product.Description,
		product.CategoryID,
		decimalToNumeric(product.SellingPrice),
		decimalToNumeric(product.CostPrice),
		product.Active,
		timeToPgTimestamptz(product.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// List lists products with pagination.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product      domain.Product
		sellingPrice pgtype.Numeric
		costPrice    pgtype.Numeric
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.CategoryID,
		&sellingPrice,
		&costPrice,
		&product.StockQuantity,
		&product.InitialStock,
		&product.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}

		return nil, err
	}

	product.SellingPrice = numericToDecimal(sellingPrice)
	product.CostPrice = numericToDecimal(costPrice)
	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return &product, nil
}
