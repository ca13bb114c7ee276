package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
	"github.com/warp/stockledger/internal/usecase/mocks"
)

type reconcileFixture struct {
	*ledgerFixture
	reconcile *usecase.ReconciliationUseCase
}

func newReconcileFixture() *reconcileFixture {
	f := newLedgerFixture()
	return &reconcileFixture{
		ledgerFixture: f,
		reconcile:     usecase.NewReconciliationUseCase(f.productRepo, f.txnRepo, f.lineItemRepo, nil),
	}
}

func TestReconciliation_ConsistentAfterOperations(t *testing.T) {
	f := newReconcileFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedProduct(t, "gadget", 50, "8.00", "4.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)
	f.seedTransaction(t, "P1", domain.TransactionKindPurchase)

	ctx := context.Background()

	// A mixed sequence of creates, an edit and a delete.
	sold, err := f.ledger.CreateLineItem(ctx, usecase.CreateLineItemInput{
		Kind: domain.TransactionKindSale, TransactionID: "S1", ProductID: "widget", Quantity: 3,
	})
	if err != nil {
		t.Fatalf("create sale item: %v", err)
	}
	bought, err := f.ledger.CreateLineItem(ctx, usecase.CreateLineItemInput{
		Kind: domain.TransactionKindPurchase, TransactionID: "P1", ProductID: "gadget", Quantity: 20,
	})
	if err != nil {
		t.Fatalf("create purchase item: %v", err)
	}
	newQuantity := int64(5)
	if _, err := f.ledger.EditLineItem(ctx, usecase.EditLineItemInput{LineItemID: sold.ID, Quantity: &newQuantity}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := f.ledger.DeleteLineItem(ctx, bought.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	report, err := f.reconcile.GenerateReport(ctx)
	if err != nil {
		t.Fatalf("generate report: %v", err)
	}

	if !report.Consistent {
		t.Errorf("report inconsistent: stock drift %+v, total drift %+v", report.StockDrift, report.TotalDrift)
	}
	if report.ProductsChecked != 2 {
		t.Errorf("products checked = %d, want 2", report.ProductsChecked)
	}
	if report.TransactionsChecked != 2 {
		t.Errorf("transactions checked = %d, want 2", report.TransactionsChecked)
	}
}

func TestReconciliation_RecomputeStock(t *testing.T) {
	f := newReconcileFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	ctx := context.Background()

	if _, err := f.ledger.CreateLineItem(ctx, usecase.CreateLineItemInput{
		Kind: domain.TransactionKindSale, TransactionID: "S1", ProductID: "widget", Quantity: 7,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	stock, err := f.reconcile.RecomputeStock(ctx, "widget")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if stock != 93 {
		t.Errorf("recomputed stock = %d, want 93", stock)
	}

	if _, err := f.reconcile.RecomputeStock(ctx, "missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
}

func TestReconciliation_VerifyProductDetectsDrift(t *testing.T) {
	f := newReconcileFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	ctx := context.Background()

	if _, err := f.ledger.CreateLineItem(ctx, usecase.CreateLineItemInput{
		Kind: domain.TransactionKindSale, TransactionID: "S1", ProductID: "widget", Quantity: 3,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Corrupt the stored aggregate behind the ledger's back.
	p, err := f.productRepo.GetByID(ctx, "widget")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p.StockQuantity = 90
	if err := f.productRepo.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	result, err := f.reconcile.VerifyProduct(ctx, "widget")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.OK {
		t.Fatal("drift not detected")
	}
	if result.Expected != 97 {
		t.Errorf("expected = %d, want 97", result.Expected)
	}
	if result.Actual != 90 {
		t.Errorf("actual = %d, want 90", result.Actual)
	}
	if result.Drift != -7 {
		t.Errorf("drift = %d, want -7", result.Drift)
	}
}

func TestReconciliation_VerifyTransactionDetectsDrift(t *testing.T) {
	f := newReconcileFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	ctx := context.Background()

	if _, err := f.ledger.CreateLineItem(ctx, usecase.CreateLineItemInput{
		Kind: domain.TransactionKindSale, TransactionID: "S1", ProductID: "widget", Quantity: 3,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := f.reconcile.VerifyTransaction(ctx, "S1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.OK {
		t.Errorf("unexpected drift %s", result.Drift)
	}
	if !result.Expected.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("expected = %s, want 30.00", result.Expected)
	}

	// Force the stored total out of line with the line items.
	f.txnRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Transaction, error) {
		return &domain.Transaction{
			ID:        id,
			Kind:      domain.TransactionKindSale,
			Total:     decimal.RequireFromString("31.00"),
			CreatedAt: time.Now().UTC(),
		}, nil
	}

	result, err = f.reconcile.VerifyTransaction(ctx, "S1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.OK {
		t.Fatal("drift not detected")
	}
	if !result.Drift.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("drift = %s, want 1.00", result.Drift)
	}
}

func TestReconciliation_ReversedItemsExcluded(t *testing.T) {
	f := newReconcileFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	ctx := context.Background()

	item, err := f.ledger.CreateLineItem(ctx, usecase.CreateLineItemInput{
		Kind: domain.TransactionKindSale, TransactionID: "S1", ProductID: "widget", Quantity: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.ledger.DeleteLineItem(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stock, err := f.reconcile.RecomputeStock(ctx, "widget")
	if err != nil {
		t.Fatalf("recompute stock: %v", err)
	}
	if stock != 100 {
		t.Errorf("recomputed stock = %d, want 100", stock)
	}

	total, err := f.reconcile.RecomputeTotal(ctx, "S1")
	if err != nil {
		t.Fatalf("recompute total: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("recomputed total = %s, want 0", total)
	}
}

func TestReconciliation_ReportCollectsDriftedEntities(t *testing.T) {
	f := newReconcileFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	ctx := context.Background()

	// Bypass the ledger so the stored aggregates never move.
	tx := &mocks.MockTx{}
	err := f.lineItemRepo.Create(ctx, tx, &domain.LineItem{
		ID:              "orphan",
		TransactionID:   "S1",
		TransactionKind: domain.TransactionKindSale,
		ProductID:       "widget",
		Quantity:        2,
		UnitPrice:       decimal.RequireFromString("10.00"),
		Status:          domain.LineItemStatusApplied,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create raw item: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	report, err := f.reconcile.GenerateReport(ctx)
	if err != nil {
		t.Fatalf("generate report: %v", err)
	}

	if report.Consistent {
		t.Fatal("report consistent, want drift")
	}
	if len(report.StockDrift) != 1 || report.StockDrift[0].ProductID != "widget" {
		t.Errorf("stock drift = %+v, want widget", report.StockDrift)
	}
	if len(report.TotalDrift) != 1 || report.TotalDrift[0].TransactionID != "S1" {
		t.Errorf("total drift = %+v, want S1", report.TotalDrift)
	}
}
