package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
)

// ProductRepository defines data access for products.
//
// Stock mutation goes through UpdateStock only, inside a transaction that
// holds the FOR UPDATE lock taken by GetByIDForUpdate. This is the
// StockAccount boundary: adjustments on the same product serialize here.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Product, error)
	UpdateStock(ctx context.Context, tx Transaction, id string, stock int64, updatedAt time.Time) error
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// TransactionRepository defines data access for sale and purchase
// transactions. UpdateTotal is the TransactionAccount boundary, with the
// same locking discipline as ProductRepository.UpdateStock.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	UpdateTotal(ctx context.Context, tx Transaction, id string, total decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, kind domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error)
}

// LineItemRepository defines data access for line items.
type LineItemRepository interface {
	Create(ctx context.Context, tx Transaction, item *domain.LineItem) error
	GetByID(ctx context.Context, id string) (*domain.LineItem, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LineItem, error)
	UpdateApplied(ctx context.Context, tx Transaction, id string, quantity int64, unitPrice decimal.Decimal, status domain.LineItemStatus, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.LineItemStatus, updatedAt time.Time) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.LineItem, error)
	// SumStockDeltaByProduct sums signed quantities over applied/reapplied
	// line items referencing the product.
	SumStockDeltaByProduct(ctx context.Context, productID string) (int64, error)
	// SumAmountByTransaction sums quantity x unit price over
	// applied/reapplied line items of the transaction.
	SumAmountByTransaction(ctx context.Context, transactionID string) (decimal.Decimal, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Category, error)
}

// SupplierRepository defines data access for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error)
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient conflicts. The operation is
// re-run from scratch each attempt so deltas are recomputed fresh.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
