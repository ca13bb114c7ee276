package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
	"github.com/warp/stockledger/internal/usecase/mocks"
)

type ledgerFixture struct {
	txManager    *mocks.MockTransactionManager
	retrier      *mocks.MockRetrier
	productRepo  *mocks.MockProductRepository
	txnRepo      *mocks.MockTransactionRepository
	lineItemRepo *mocks.MockLineItemRepository
	auditRepo    *mocks.MockAuditRepository
	idGen        *mocks.MockIDGenerator
	ledger       *usecase.LedgerUseCase
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		txManager:    mocks.NewMockTransactionManager(),
		retrier:      mocks.NewMockRetrier(),
		productRepo:  mocks.NewMockProductRepository(),
		txnRepo:      mocks.NewMockTransactionRepository(),
		lineItemRepo: mocks.NewMockLineItemRepository(),
		auditRepo:    mocks.NewMockAuditRepository(),
		idGen:        mocks.NewMockIDGenerator(),
	}
	f.ledger = usecase.NewLedgerUseCase(
		f.txManager, f.retrier, f.productRepo, f.txnRepo, f.lineItemRepo, f.auditRepo, f.idGen, nil,
	)
	return f
}

func (f *ledgerFixture) seedProduct(t *testing.T, id string, stock int64, sellingPrice, costPrice string) {
	t.Helper()
	err := f.productRepo.Create(context.Background(), &domain.Product{
		ID:            id,
		Name:          id,
		SellingPrice:  decimal.RequireFromString(sellingPrice),
		CostPrice:     decimal.RequireFromString(costPrice),
		StockQuantity: stock,
		InitialStock:  stock,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func (f *ledgerFixture) seedTransaction(t *testing.T, id string, kind domain.TransactionKind) {
	t.Helper()
	err := f.txnRepo.Create(context.Background(), &domain.Transaction{
		ID:        id,
		Kind:      kind,
		Total:     decimal.Zero,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func (f *ledgerFixture) productStock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.productRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	return p.StockQuantity
}

func (f *ledgerFixture) transactionTotal(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	txn, err := f.txnRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	return txn.Total
}

func TestLedgerUseCase_CreateLineItem_Sale(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !item.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("unit price = %s, want 10.00 (defaulted from selling price)", item.UnitPrice)
	}
	if item.Status != domain.LineItemStatusApplied {
		t.Errorf("status = %s, want applied", item.Status)
	}
	if got := f.productStock(t, "widget"); got != 97 {
		t.Errorf("stock = %d, want 97", got)
	}
	if got := f.transactionTotal(t, "S1"); !got.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("total = %s, want 30.00", got)
	}
}

func TestLedgerUseCase_CreateLineItem_Purchase(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "gadget", 50, "8.00", "4.00")
	f.seedTransaction(t, "P1", domain.TransactionKindPurchase)

	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindPurchase,
		TransactionID: "P1",
		ProductID:     "gadget",
		Quantity:      20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !item.UnitPrice.Equal(decimal.RequireFromString("4.00")) {
		t.Errorf("unit price = %s, want 4.00 (defaulted from cost price)", item.UnitPrice)
	}
	if got := f.productStock(t, "gadget"); got != 70 {
		t.Errorf("stock = %d, want 70", got)
	}
	if got := f.transactionTotal(t, "P1"); !got.Equal(decimal.RequireFromString("80.00")) {
		t.Errorf("total = %s, want 80.00", got)
	}
}

func TestLedgerUseCase_CreateLineItem_ExplicitPrice(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	price := decimal.RequireFromString("12.50")
	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      2,
		UnitPrice:     &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !item.UnitPrice.Equal(price) {
		t.Errorf("unit price = %s, want explicit 12.50", item.UnitPrice)
	}
	if got := f.transactionTotal(t, "S1"); !got.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("total = %s, want 25.00", got)
	}
}

func TestLedgerUseCase_CreateLineItem_InvalidQuantity(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	for _, quantity := range []int64{0, -1} {
		_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
			Kind:          domain.TransactionKindSale,
			TransactionID: "S1",
			ProductID:     "widget",
			Quantity:      quantity,
		})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("quantity %d: error = %v, want ErrInvalidQuantity", quantity, err)
		}
	}

	// rejected operations leave stock and total unchanged
	if got := f.productStock(t, "widget"); got != 100 {
		t.Errorf("stock = %d, want untouched 100", got)
	}
	if got := f.transactionTotal(t, "S1"); !got.IsZero() {
		t.Errorf("total = %s, want untouched 0", got)
	}
}

func TestLedgerUseCase_CreateLineItem_NotFound(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "missing",
		Quantity:      1,
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}

	_, err = f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "missing",
		ProductID:     "widget",
		Quantity:      1,
	})
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("error = %v, want ErrTransactionNotFound", err)
	}
}

func TestLedgerUseCase_CreateLineItem_KindMismatch(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "P1", domain.TransactionKindPurchase)

	_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "P1",
		ProductID:     "widget",
		Quantity:      1,
	})
	if !errors.Is(err, domain.ErrKindMismatch) {
		t.Errorf("error = %v, want ErrKindMismatch", err)
	}
	if got := f.productStock(t, "widget"); got != 100 {
		t.Errorf("stock = %d, want untouched 100", got)
	}
}

func TestLedgerUseCase_CreateLineItem_AtomicityUnderFailure(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	// Fail between the stock adjustment and the total accumulation.
	injected := errors.New("write failed")
	f.txnRepo.UpdateTotalFunc = func(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal, updatedAt time.Time) error {
		return injected
	}

	_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      3,
	})
	if !errors.Is(err, domain.ErrPartialApplication) {
		t.Fatalf("error = %v, want ErrPartialApplication", err)
	}
	if !errors.Is(err, injected) {
		t.Errorf("cause %v not preserved in chain", injected)
	}

	// No partial state: stock, total and line items all at pre-operation values.
	if got := f.productStock(t, "widget"); got != 100 {
		t.Errorf("stock = %d, want rolled back to 100", got)
	}
	if got := f.transactionTotal(t, "S1"); !got.IsZero() {
		t.Errorf("total = %s, want rolled back to 0", got)
	}
	items, _ := f.lineItemRepo.ListByTransaction(context.Background(), "S1")
	if len(items) != 0 {
		t.Errorf("line items persisted = %d, want 0", len(items))
	}
}

func TestLedgerUseCase_CreateLineItem_CommitFailure(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	injected := errors.New("connection reset")
	f.txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTx{CommitFunc: func(ctx context.Context) error { return injected }}, nil
	}

	_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      3,
	})
	if !errors.Is(err, domain.ErrPartialApplication) {
		t.Fatalf("error = %v, want ErrPartialApplication", err)
	}
	if got := f.productStock(t, "widget"); got != 100 {
		t.Errorf("stock = %d, want 100", got)
	}
}

func TestLedgerUseCase_ConcurrentCreatesConverge(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	const n = 50

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
				Kind:          domain.TransactionKindSale,
				TransactionID: "S1",
				ProductID:     "widget",
				Quantity:      1,
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create failed: %v", err)
		}
	}

	// Final converged value regardless of interleaving: no lost updates.
	if got := f.productStock(t, "widget"); got != 100-n {
		t.Errorf("stock = %d, want %d", got, 100-n)
	}
	if got := f.transactionTotal(t, "S1"); !got.Equal(decimal.NewFromInt(n * 10)) {
		t.Errorf("total = %s, want %d.00", got, n*10)
	}
}

func TestLedgerUseCase_EditLineItem(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 3 -> 5: old delta retracted, new delta applied in one unit.
	newQuantity := int64(5)
	edited, err := f.ledger.EditLineItem(context.Background(), usecase.EditLineItemInput{
		LineItemID: item.ID,
		Quantity:   &newQuantity,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if edited.Status != domain.LineItemStatusReapplied {
		t.Errorf("status = %s, want reapplied", edited.Status)
	}
	if got := f.productStock(t, "widget"); got != 95 {
		t.Errorf("stock = %d, want 95", got)
	}
	if got := f.transactionTotal(t, "S1"); !got.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("total = %s, want 50.00", got)
	}
}

func TestLedgerUseCase_EditLineItem_PriceChange(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      4,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := decimal.RequireFromString("7.50")
	edited, err := f.ledger.EditLineItem(context.Background(), usecase.EditLineItemInput{
		LineItemID: item.ID,
		UnitPrice:  &newPrice,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if !edited.UnitPrice.Equal(newPrice) {
		t.Errorf("unit price = %s, want 7.50", edited.UnitPrice)
	}
	// quantity unchanged, only the amount delta moved: 40.00 -> 30.00
	if got := f.transactionTotal(t, "S1"); !got.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("total = %s, want 30.00", got)
	}
	if got := f.productStock(t, "widget"); got != 96 {
		t.Errorf("stock = %d, want unchanged 96", got)
	}
}

func TestLedgerUseCase_EditLineItem_InvalidQuantity(t *testing.T) {
	f := newLedgerFixture()

	zero := int64(0)
	_, err := f.ledger.EditLineItem(context.Background(), usecase.EditLineItemInput{
		LineItemID: "whatever",
		Quantity:   &zero,
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("error = %v, want ErrInvalidQuantity", err)
	}
}

func TestLedgerUseCase_DeleteLineItem(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.ledger.DeleteLineItem(context.Background(), item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Effect fully retracted.
	if got := f.productStock(t, "widget"); got != 100 {
		t.Errorf("stock = %d, want 100", got)
	}
	if got := f.transactionTotal(t, "S1"); !got.IsZero() {
		t.Errorf("total = %s, want 0", got)
	}

	stored, err := f.ledger.GetLineItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != domain.LineItemStatusReversed {
		t.Errorf("status = %s, want reversed", stored.Status)
	}

	// Reversed is terminal: neither delete nor edit may run again.
	if err := f.ledger.DeleteLineItem(context.Background(), item.ID); !errors.Is(err, domain.ErrLineItemReversed) {
		t.Errorf("second delete error = %v, want ErrLineItemReversed", err)
	}
	quantity := int64(2)
	if _, err := f.ledger.EditLineItem(context.Background(), usecase.EditLineItemInput{
		LineItemID: item.ID,
		Quantity:   &quantity,
	}); !errors.Is(err, domain.ErrLineItemReversed) {
		t.Errorf("edit after delete error = %v, want ErrLineItemReversed", err)
	}
}

func TestLedgerUseCase_RetryRecomputesDeltas(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	// Retrier that runs the operation up to three times, like the
	// postgres retrier does on serialization failures.
	attempts := 0
	f.retrier.RetryFunc = func(ctx context.Context, operation func() error) error {
		var err error
		for i := 0; i < 3; i++ {
			attempts++
			if err = operation(); err == nil {
				return nil
			}
		}
		return err
	}

	failures := 2
	f.txnRepo.UpdateTotalFunc = func(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal, updatedAt time.Time) error {
		if failures > 0 {
			failures--
			return errors.New("serialization failure")
		}
		f.txnRepo.UpdateTotalFunc = nil
		return f.txnRepo.UpdateTotal(ctx, tx, id, total, updatedAt)
	}

	_, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	// Applied exactly once despite the retries.
	if got := f.productStock(t, "widget"); got != 99 {
		t.Errorf("stock = %d, want 99", got)
	}
	if got := f.transactionTotal(t, "S1"); !got.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("total = %s, want 10.00", got)
	}
}

func TestLedgerUseCase_AuditTrail(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "widget", 100, "10.00", "6.00")
	f.seedTransaction(t, "S1", domain.TransactionKindSale)

	item, err := f.ledger.CreateLineItem(context.Background(), usecase.CreateLineItemInput{
		Kind:          domain.TransactionKindSale,
		TransactionID: "S1",
		ProductID:     "widget",
		Quantity:      3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.ledger.DeleteLineItem(context.Background(), item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	logs, err := f.auditRepo.ListByResource(context.Background(), "line_item", item.ID)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("audit logs = %d, want 2", len(logs))
	}
	if logs[0].Action != domain.AuditActionLineItemApply {
		t.Errorf("first action = %s, want apply", logs[0].Action)
	}
	if logs[1].Action != domain.AuditActionLineItemReverse {
		t.Errorf("second action = %s, want reverse", logs[1].Action)
	}
}
