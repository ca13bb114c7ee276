package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// CreateTx inserts an audit log entry inside the given transaction, so
// the entry commits or rolls back with the operation it describes.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	var beforeStateJSON, afterStateJSON []byte
	var err error

	if log.BeforeState != nil {
		beforeStateJSON, err = json.Marshal(log.BeforeState)
		if err != nil {
			return err
		}
	}

	if log.AfterState != nil {
		afterStateJSON, err = json.Marshal(log.AfterState)
		if err != nil {
			return err
		}
	}

	_, err = txQuerier(tx).Exec(ctx, `
		INSERT INTO audit_logs (id, action, resource_type, resource_id, before_state, after_state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID,
		string(log.Action),
		log.ResourceType,
		log.ResourceID,
		beforeStateJSON,
		afterStateJSON,
		timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// ListByResource retrieves the audit trail of one resource in creation
// order.
func (r *AuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, action, resource_type, resource_id, before_state, after_state, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at, id`,
		resourceType, resourceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log            domain.AuditLog
			action         string
			beforeStateJSON []byte
			afterStateJSON  []byte
			createdAt      pgtype.Timestamptz
		)

		err := rows.Scan(
			&log.ID,
			&action,
			&log.ResourceType,
			&log.ResourceID,
			&beforeStateJSON,
			&afterStateJSON,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if beforeStateJSON != nil {
			_ = json.Unmarshal(beforeStateJSON, &log.BeforeState)
		}
		if afterStateJSON != nil {
			_ = json.Unmarshal(afterStateJSON, &log.AfterState)
		}

		log.Action = domain.AuditAction(action)
		log.CreatedAt = createdAt.Time
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
