package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/infrastructure/metrics"
)

// LedgerUseCase orchestrates line-item mutations. Each operation computes
// a signed (stock, amount) delta and applies it exactly once to the
// product's stock and the transaction's total, as one atomic unit of work
// spanning the line-item row, the product row, and the transaction row.
//
// Concurrency model: the product row is locked first, then the
// transaction row (line item first on the edit/delete path). The order is
// fixed across all operations to prevent deadlocks; operations touching
// disjoint (product, transaction) pairs proceed fully in parallel.
type LedgerUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	productRepo  ProductRepository
	txnRepo      TransactionRepository
	lineItemRepo LineItemRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. metrics may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	retrier Retrier,
	productRepo ProductRepository,
	txnRepo TransactionRepository,
	lineItemRepo LineItemRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:    txManager,
		retrier:      retrier,
		productRepo:  productRepo,
		txnRepo:      txnRepo,
		lineItemRepo: lineItemRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		metrics:      m,
	}
}

// CreateLineItemInput represents input for recording a line item.
type CreateLineItemInput struct {
	UnitPrice     *decimal.Decimal
	Kind          domain.TransactionKind
	TransactionID string
	ProductID     string
	Quantity      int64
}

// EditLineItemInput represents input for editing a line item. Nil fields
// keep the stored value.
type EditLineItemInput struct {
	Quantity   *int64
	UnitPrice  *decimal.Decimal
	LineItemID string
}

// CreateLineItem records a line item and applies its effect atomically.
// Transient serialization conflicts are retried with the deltas recomputed
// fresh each attempt; validation errors are returned synchronously and
// never retried.
func (uc *LedgerUseCase) CreateLineItem(ctx context.Context, input CreateLineItemInput) (*domain.LineItem, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !input.Kind.Valid() {
		return nil, domain.ErrKindMismatch
	}

	start := time.Now()

	var created *domain.LineItem

	err := uc.retrier.Retry(ctx, func() error {
		item, err := uc.applyCreate(ctx, input)
		if err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LineItemsApplied.WithLabelValues(string(input.Kind)).Inc()
		uc.metrics.LedgerDuration.Observe(time.Since(start).Seconds())
	}

	return created, nil
}

func (uc *LedgerUseCase) applyCreate(ctx context.Context, input CreateLineItemInput) (*domain.LineItem, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock order: product row, then transaction row.
	product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, input.ProductID)
	if err != nil {
		return nil, err
	}

	txn, err := uc.txnRepo.GetByIDForUpdate(ctx, tx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if txn.Kind != input.Kind {
		return nil, domain.ErrKindMismatch
	}

	unitPrice, err := domain.ResolveUnitPrice(input.UnitPrice, product, txn.Kind)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	item := &domain.LineItem{
		ID:              uc.idGen.Generate(),
		TransactionID:   txn.ID,
		TransactionKind: txn.Kind,
		ProductID:       product.ID,
		Quantity:        input.Quantity,
		UnitPrice:       unitPrice,
		Status:          domain.LineItemStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.lineItemRepo.Create(ctx, tx, item); err != nil {
		return nil, partialApplication(err)
	}

	newStock := product.ApplyStockDelta(item.StockDelta())
	if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
		return nil, partialApplication(err)
	}

	newTotal := txn.Total.Add(item.TotalDelta())
	if err := uc.txnRepo.UpdateTotal(ctx, tx, txn.ID, newTotal, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := uc.lineItemRepo.UpdateStatus(ctx, tx, item.ID, domain.LineItemStatusApplied, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := uc.audit(ctx, tx, domain.AuditActionLineItemApply, item, ledgerState{product.StockQuantity, txn.Total}, ledgerState{newStock, newTotal}, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, partialApplication(err)
	}

	item.Status = domain.LineItemStatusApplied
	uc.recordStock(product.ID, newStock, item.StockDelta())

	return item, nil
}

// EditLineItem atomically retracts the stored delta and applies the newly
// computed one in the same unit of work.
func (uc *LedgerUseCase) EditLineItem(ctx context.Context, input EditLineItemInput) (*domain.LineItem, error) {
	if input.Quantity != nil && *input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	start := time.Now()

	var edited *domain.LineItem

	err := uc.retrier.Retry(ctx, func() error {
		item, err := uc.applyEdit(ctx, input)
		if err != nil {
			return err
		}
		edited = item
		return nil
	})
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LineItemsEdited.Inc()
		uc.metrics.LedgerDuration.Observe(time.Since(start).Seconds())
	}

	return edited, nil
}

func (uc *LedgerUseCase) applyEdit(ctx context.Context, input EditLineItemInput) (*domain.LineItem, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock order: line item, then product, then transaction.
	item, err := uc.lineItemRepo.GetByIDForUpdate(ctx, tx, input.LineItemID)
	if err != nil {
		return nil, err
	}

	if item.Status == domain.LineItemStatusReversed {
		return nil, domain.ErrLineItemReversed
	}

	product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, item.ProductID)
	if err != nil {
		return nil, err
	}

	txn, err := uc.txnRepo.GetByIDForUpdate(ctx, tx, item.TransactionID)
	if err != nil {
		return nil, err
	}

	newQuantity := item.Quantity
	if input.Quantity != nil {
		newQuantity = *input.Quantity
	}

	newPrice := item.UnitPrice
	if input.UnitPrice != nil {
		newPrice, err = domain.ResolveUnitPrice(input.UnitPrice, product, item.TransactionKind)
		if err != nil {
			return nil, err
		}
	}

	edited := &domain.LineItem{
		ID:              item.ID,
		TransactionID:   item.TransactionID,
		TransactionKind: item.TransactionKind,
		ProductID:       item.ProductID,
		Quantity:        newQuantity,
		UnitPrice:       newPrice,
		Status:          domain.LineItemStatusReapplied,
		CreatedAt:       item.CreatedAt,
	}

	now := time.Now().UTC()
	edited.UpdatedAt = now

	// Retract the old effect, apply the new one, in one unit.
	newStock := product.StockQuantity - item.StockDelta() + edited.StockDelta()
	newTotal := txn.Total.Sub(item.TotalDelta()).Add(edited.TotalDelta())

	if err := uc.lineItemRepo.UpdateApplied(ctx, tx, item.ID, newQuantity, newPrice, domain.LineItemStatusReapplied, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := uc.txnRepo.UpdateTotal(ctx, tx, txn.ID, newTotal, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := uc.audit(ctx, tx, domain.AuditActionLineItemReapply, edited, ledgerState{product.StockQuantity, txn.Total}, ledgerState{newStock, newTotal}, now); err != nil {
		return nil, partialApplication(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, partialApplication(err)
	}

	uc.recordStock(product.ID, newStock, newStock-product.StockQuantity)

	return edited, nil
}

// DeleteLineItem retracts the stored delta and marks the line item
// reversed, atomically. Reversed is terminal.
func (uc *LedgerUseCase) DeleteLineItem(ctx context.Context, lineItemID string) error {
	start := time.Now()

	err := uc.retrier.Retry(ctx, func() error {
		return uc.applyDelete(ctx, lineItemID)
	})
	if err != nil {
		uc.recordError(err)
		return err
	}

	if uc.metrics != nil {
		uc.metrics.LineItemsReversed.Inc()
		uc.metrics.LedgerDuration.Observe(time.Since(start).Seconds())
	}

	return nil
}

func (uc *LedgerUseCase) applyDelete(ctx context.Context, lineItemID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	item, err := uc.lineItemRepo.GetByIDForUpdate(ctx, tx, lineItemID)
	if err != nil {
		return err
	}

	if item.Status == domain.LineItemStatusReversed {
		return domain.ErrLineItemReversed
	}

	product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, item.ProductID)
	if err != nil {
		return err
	}

	txn, err := uc.txnRepo.GetByIDForUpdate(ctx, tx, item.TransactionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	newStock := product.StockQuantity - item.StockDelta()
	newTotal := txn.Total.Sub(item.TotalDelta())

	if err := uc.lineItemRepo.UpdateStatus(ctx, tx, item.ID, domain.LineItemStatusReversed, now); err != nil {
		return partialApplication(err)
	}

	if err := uc.productRepo.UpdateStock(ctx, tx, product.ID, newStock, now); err != nil {
		return partialApplication(err)
	}

	if err := uc.txnRepo.UpdateTotal(ctx, tx, txn.ID, newTotal, now); err != nil {
		return partialApplication(err)
	}

	if err := uc.audit(ctx, tx, domain.AuditActionLineItemReverse, item, ledgerState{product.StockQuantity, txn.Total}, ledgerState{newStock, newTotal}, now); err != nil {
		return partialApplication(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return partialApplication(err)
	}

	uc.recordStock(product.ID, newStock, -item.StockDelta())

	return nil
}

// GetLineItem retrieves a line item by ID.
func (uc *LedgerUseCase) GetLineItem(ctx context.Context, id string) (*domain.LineItem, error) {
	return uc.lineItemRepo.GetByID(ctx, id)
}

// ListLineItems lists a transaction's line items in creation order.
func (uc *LedgerUseCase) ListLineItems(ctx context.Context, transactionID string) ([]*domain.LineItem, error) {
	if _, err := uc.txnRepo.GetByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return uc.lineItemRepo.ListByTransaction(ctx, transactionID)
}

type ledgerState struct {
	Stock int64
	Total decimal.Decimal
}

func (uc *LedgerUseCase) audit(ctx context.Context, tx Transaction, action domain.AuditAction, item *domain.LineItem, before, after ledgerState, now time.Time) error {
	if uc.auditRepo == nil {
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(string(action)).Inc()
	}

	return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       action,
		ResourceType: "line_item",
		ResourceID:   item.ID,
		BeforeState: domain.JSON{
			"stock_quantity": before.Stock,
			"total":          before.Total.String(),
		},
		AfterState: domain.JSON{
			"stock_quantity": after.Stock,
			"total":          after.Total.String(),
			"quantity":       item.Quantity,
			"unit_price":     item.UnitPrice.String(),
		},
		CreatedAt: now,
	})
}

func (uc *LedgerUseCase) recordStock(productID string, level, delta int64) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.StockLevel.WithLabelValues(productID).Set(float64(level))
	if delta > 0 {
		uc.metrics.StockMovements.WithLabelValues("in").Add(float64(delta))
	} else if delta < 0 {
		uc.metrics.StockMovements.WithLabelValues("out").Add(float64(-delta))
	}
}

func (uc *LedgerUseCase) recordError(err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.LedgerErrors.WithLabelValues(ledgerErrorType(err)).Inc()
}

func ledgerErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrPriceUnresolved):
		return "price_unresolved"
	case errors.Is(err, domain.ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(err, domain.ErrLineItemReversed):
		return "reversed"
	case errors.Is(err, domain.ErrConcurrentConflict):
		return "concurrent_conflict"
	case errors.Is(err, domain.ErrPartialApplication):
		return "partial_application"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrLineItemNotFound):
		return "not_found"
	default:
		return "other"
	}
}

// partialApplication marks a failure inside the atomic unit of work. The
// wrapped cause stays in the chain so the retrier can still classify
// transient conflicts.
func partialApplication(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrPartialApplication, err)
}
