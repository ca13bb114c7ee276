package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/infrastructure/metrics"
)

// ReconciliationUseCase recomputes product stock and transaction totals
// from the full set of applied line items and reports drift against the
// stored aggregates. Read-only: it never mutates state.
type ReconciliationUseCase struct {
	productRepo  ProductRepository
	txnRepo      TransactionRepository
	lineItemRepo LineItemRepository
	metrics      *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase. metrics
// may be nil.
func NewReconciliationUseCase(
	productRepo ProductRepository,
	txnRepo TransactionRepository,
	lineItemRepo LineItemRepository,
	m *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		productRepo:  productRepo,
		txnRepo:      txnRepo,
		lineItemRepo: lineItemRepo,
		metrics:      m,
	}
}

// StockCheckResult is the outcome of verifying one product's stock.
type StockCheckResult struct {
	ProductID string
	Expected  int64
	Actual    int64
	Drift     int64
	OK        bool
	CheckedAt time.Time
}

// TotalCheckResult is the outcome of verifying one transaction's total.
type TotalCheckResult struct {
	Expected      decimal.Decimal
	Actual        decimal.Decimal
	Drift         decimal.Decimal
	TransactionID string
	OK            bool
	CheckedAt     time.Time
}

// RecomputeStock recomputes a product's stock from its baseline plus the
// signed deltas of every applied line item referencing it.
func (uc *ReconciliationUseCase) RecomputeStock(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	delta, err := uc.lineItemRepo.SumStockDeltaByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	return product.InitialStock + delta, nil
}

// RecomputeTotal recomputes a transaction's total as the sum of
// quantity x unit price over its applied line items.
func (uc *ReconciliationUseCase) RecomputeTotal(ctx context.Context, transactionID string) (decimal.Decimal, error) {
	if _, err := uc.txnRepo.GetByID(ctx, transactionID); err != nil {
		return decimal.Zero, err
	}

	return uc.lineItemRepo.SumAmountByTransaction(ctx, transactionID)
}

// VerifyProduct compares a product's stored stock against its
// recomputation and reports the drift.
func (uc *ReconciliationUseCase) VerifyProduct(ctx context.Context, productID string) (*StockCheckResult, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	delta, err := uc.lineItemRepo.SumStockDeltaByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	expected := product.InitialStock + delta
	drift := product.StockQuantity - expected

	return &StockCheckResult{
		ProductID: productID,
		Expected:  expected,
		Actual:    product.StockQuantity,
		Drift:     drift,
		OK:        drift == 0,
		CheckedAt: time.Now().UTC(),
	}, nil
}

// VerifyTransaction compares a transaction's stored total against its
// recomputation and reports the drift.
func (uc *ReconciliationUseCase) VerifyTransaction(ctx context.Context, transactionID string) (*TotalCheckResult, error) {
	txn, err := uc.txnRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	expected, err := uc.lineItemRepo.SumAmountByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	drift := txn.Total.Sub(expected)

	return &TotalCheckResult{
		TransactionID: transactionID,
		Expected:      expected,
		Actual:        txn.Total,
		Drift:         drift,
		OK:            drift.IsZero(),
		CheckedAt:     time.Now().UTC(),
	}, nil
}

// Report is a full reconciliation sweep over products and transactions.
type Report struct {
	CheckedAt           time.Time
	StockDrift          []*StockCheckResult
	TotalDrift          []*TotalCheckResult
	ProductsChecked     int
	TransactionsChecked int
	Consistent          bool
}

// GenerateReport verifies every product and every transaction and
// collects the entities whose books have drifted.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*Report, error) {
	limit, _ := domain.ValidatePagination(1000, 0)

	report := &Report{
		CheckedAt:  time.Now().UTC(),
		Consistent: true,
	}

	for offset := 0; ; offset += limit {
		products, err := uc.productRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		for _, product := range products {
			result, err := uc.VerifyProduct(ctx, product.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to verify product %s: %w", product.ID, err)
			}
			report.ProductsChecked++
			if !result.OK {
				report.Consistent = false
				report.StockDrift = append(report.StockDrift, result)
			}
		}

		if len(products) < limit {
			break
		}
	}

	for _, kind := range []domain.TransactionKind{domain.TransactionKindSale, domain.TransactionKindPurchase} {
		for offset := 0; ; offset += limit {
			txns, err := uc.txnRepo.List(ctx, kind, limit, offset)
			if err != nil {
				return nil, err
			}

			for _, txn := range txns {
				result, err := uc.VerifyTransaction(ctx, txn.ID)
				if err != nil {
					return nil, fmt.Errorf("failed to verify transaction %s: %w", txn.ID, err)
				}
				report.TransactionsChecked++
				if !result.OK {
					report.Consistent = false
					report.TotalDrift = append(report.TotalDrift, result)
				}
			}

			if len(txns) < limit {
				break
			}
		}
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		uc.metrics.ReconciliationDrift.WithLabelValues("stock").Add(float64(len(report.StockDrift)))
		uc.metrics.ReconciliationDrift.WithLabelValues("total").Add(float64(len(report.TotalDrift)))
	}

	return report, nil
}
