package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warp/stockledger/internal/domain"
)

// SupplierRepository implements usecase.SupplierRepository.
type SupplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository creates a new SupplierRepository.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{pool: pool}
}

const supplierColumns = `id, name, phone, email, address, created_at, updated_at`

// Create creates a new supplier.
func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		supplier.ID,
		supplier.Name,
		supplier.Phone,
		supplier.Email,
		supplier.Address,
		timeToPgTimestamptz(supplier.CreatedAt),
		timeToPgTimestamptz(supplier.UpdatedAt),
	)

	return err
}

// GetByID retrieves a supplier by ID.
func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx, `
		SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
}

// Update updates a supplier.
func (r *SupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE suppliers
		SET name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $1`,
		supplier.ID,
		supplier.Name,
		supplier.Phone,
		supplier.Email,
		supplier.Address,
		timeToPgTimestamptz(supplier.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}

	return nil
}

// Delete deletes a supplier.
func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}

	return nil
}

// List lists suppliers with pagination.
func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+supplierColumns+` FROM suppliers
		ORDER BY name, id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := make([]*domain.Supplier, 0)
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}

	return suppliers, rows.Err()
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var (
		supplier  domain.Supplier
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.Phone,
		&supplier.Email,
		&supplier.Address,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}

		return nil, err
	}

	supplier.CreatedAt = createdAt.Time
	supplier.UpdatedAt = updatedAt.Time

	return &supplier, nil
}
