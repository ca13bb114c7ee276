package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/infrastructure/metrics"
)

// TransactionUseCase handles sale and purchase headers. Totals start at
// 0.00 and move only through the ledger.
type TransactionUseCase struct {
	txnRepo      TransactionRepository
	customerRepo CustomerRepository
	supplierRepo SupplierRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase. metrics may be
// nil.
func NewTransactionUseCase(
	txnRepo TransactionRepository,
	customerRepo CustomerRepository,
	supplierRepo SupplierRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		idGen:        idGen,
		metrics:      m,
	}
}

// CreateTransactionInput represents input for opening a transaction.
type CreateTransactionInput struct {
	Kind           domain.TransactionKind
	CounterpartyID string
}

// CreateTransaction opens a sale or purchase with a zero total. The
// counterparty must exist: customers for sales, suppliers for purchases.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrKindMismatch
	}

	switch input.Kind {
	case domain.TransactionKindSale:
		if _, err := uc.customerRepo.GetByID(ctx, input.CounterpartyID); err != nil {
			return nil, err
		}
	case domain.TransactionKindPurchase:
		if _, err := uc.supplierRepo.GetByID(ctx, input.CounterpartyID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		Kind:           input.Kind,
		CounterpartyID: input.CounterpartyID,
		Total:          decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(txn.Kind)).Inc()
	}

	return txn, nil
}

// GetTransaction retrieves a transaction by ID, checking its kind when
// one is given (the sales and purchases routes are distinct).
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string, kind domain.TransactionKind) (*domain.Transaction, error) {
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if kind != "" && txn.Kind != kind {
		return nil, domain.ErrTransactionNotFound
	}

	return txn, nil
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Kind   domain.TransactionKind
	Limit  int
	Offset int
}

// ListTransactions lists transactions of one kind with pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	if input.Limit <= 0 {
		limit = 20
	}
	return uc.txnRepo.List(ctx, input.Kind, limit, offset)
}
