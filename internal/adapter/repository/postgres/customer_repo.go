package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warp/stockledger/internal/domain"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, name, phone, email, address, created_at, updated_at`

// Create creates a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		customer.ID,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
		timeToPgTimestamptz(customer.CreatedAt),
		timeToPgTimestamptz(customer.UpdatedAt),
	)

	return err
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return scanCustomer(r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

// Update updates a customer.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $1`,
		customer.ID,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
		timeToPgTimestamptz(customer.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// Delete deletes a customer.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// List lists customers with pagination.
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+customerColumns+` FROM customers
		ORDER BY name, id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		customer  domain.Customer
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.Email,
		&customer.Address,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, err
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}
