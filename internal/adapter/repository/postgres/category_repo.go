package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warp/stockledger/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`,
		category.ID,
		category.Name,
		timeToPgTimestamptz(category.CreatedAt),
		timeToPgTimestamptz(category.UpdatedAt),
	)

	return err
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var (
		category  domain.Category
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time

	return &category, nil
}

// Update updates a category.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $2, updated_at = $3 WHERE id = $1`,
		category.ID, category.Name, timeToPgTimestamptz(category.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// List lists categories with pagination.
func (r *CategoryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM categories
		ORDER BY name, id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var (
			category  domain.Category
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)

		if err := rows.Scan(&category.ID, &category.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		category.CreatedAt = createdAt.Time
		category.UpdatedAt = updatedAt.Time
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
