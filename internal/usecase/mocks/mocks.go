// Package mocks provides hand-written mock implementations of the
// usecase interfaces. Mutating calls that take a transaction stage their
// writes on the MockTx and apply them on Commit, so tests observe real
// all-or-nothing behavior; MockTransactionManager serializes transactions
// the way row locks on a single database would.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	return &MockTx{unlock: m.mu.Unlock}, nil
}

// MockTx buffers staged writes until Commit. Rollback discards them.
type MockTx struct {
	once   sync.Once
	staged []func()
	unlock func()

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

// Stage queues a write to run at Commit.
func (t *MockTx) Stage(f func()) {
	t.staged = append(t.staged, f)
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		if err := t.CommitFunc(ctx); err != nil {
			return err
		}
	}
	t.once.Do(func() {
		for _, f := range t.staged {
			f()
		}
		if t.unlock != nil {
			t.unlock()
		}
	})
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.once.Do(func() {
		t.staged = nil
		if t.unlock != nil {
			t.unlock()
		}
	})
	return nil
}

// stage queues f on the transaction when one is given, otherwise applies
// it immediately.
func stage(tx usecase.Transaction, f func()) {
	if mt, ok := tx.(*MockTx); ok && mt != nil {
		mt.Stage(f)
		return
	}
	f()
}

// MockRetrier is a mock implementation of Retrier. By default it runs the
// operation exactly once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	counter atomic.Int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return fmt.Sprintf("mock-id-%06d", m.counter.Add(1))
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	CreateFunc           func(ctx context.Context, product *domain.Product) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Product, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error)
	UpdateStockFunc      func(ctx context.Context, tx usecase.Transaction, id string, stock int64, updatedAt time.Time) error
	UpdateFunc           func(ctx context.Context, product *domain.Product) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, tx usecase.Transaction, id string, stock int64, updatedAt time.Time) error {
	if m.UpdateStockFunc != nil {
		return m.UpdateStockFunc(ctx, tx, id, stock, updatedAt)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if p, ok := m.products[id]; ok {
			p.StockQuantity = stock
			p.UpdatedAt = updatedAt
		}
	})
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return paginate(products, limit, offset), nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc           func(ctx context.Context, txn *domain.Transaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	UpdateTotalFunc      func(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, kind domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *txn
	m.transactions[txn.ID] = &cp
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) UpdateTotal(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateTotalFunc != nil {
		return m.UpdateTotalFunc(ctx, tx, id, total, updatedAt)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t, ok := m.transactions[id]; ok {
			t.Total = total
			t.UpdatedAt = updatedAt
		}
	})
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, kind domain.TransactionKind, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, t := range m.transactions {
		if kind == "" || t.Kind == kind {
			cp := *t
			txns = append(txns, &cp)
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].ID < txns[j].ID })
	return paginate(txns, limit, offset), nil
}

// MockLineItemRepository is a mock implementation of LineItemRepository.
type MockLineItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.LineItem
	seq   int64

	CreateFunc                 func(ctx context.Context, tx usecase.Transaction, item *domain.LineItem) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.LineItem, error)
	GetByIDForUpdateFunc       func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LineItem, error)
	UpdateAppliedFunc          func(ctx context.Context, tx usecase.Transaction, id string, quantity int64, unitPrice decimal.Decimal, status domain.LineItemStatus, updatedAt time.Time) error
	UpdateStatusFunc           func(ctx context.Context, tx usecase.Transaction, id string, status domain.LineItemStatus, updatedAt time.Time) error
	ListByTransactionFunc      func(ctx context.Context, transactionID string) ([]*domain.LineItem, error)
	SumStockDeltaByProductFunc func(ctx context.Context, productID string) (int64, error)
	SumAmountByTransactionFunc func(ctx context.Context, transactionID string) (decimal.Decimal, error)
}

func NewMockLineItemRepository() *MockLineItemRepository {
	return &MockLineItemRepository{
		items: make(map[string]*domain.LineItem),
	}
}

func (m *MockLineItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.LineItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, item)
	}
	cp := *item
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.seq++
		m.items[cp.ID] = &cp
	})
	return nil
}

func (m *MockLineItemRepository) GetByID(ctx context.Context, id string) (*domain.LineItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if li, ok := m.items[id]; ok {
		cp := *li
		return &cp, nil
	}
	return nil, domain.ErrLineItemNotFound
}

func (m *MockLineItemRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LineItem, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockLineItemRepository) UpdateApplied(ctx context.Context, tx usecase.Transaction, id string, quantity int64, unitPrice decimal.Decimal, status domain.LineItemStatus, updatedAt time.Time) error {
	if m.UpdateAppliedFunc != nil {
		return m.UpdateAppliedFunc(ctx, tx, id, quantity, unitPrice, status, updatedAt)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if li, ok := m.items[id]; ok {
			li.Quantity = quantity
			li.UnitPrice = unitPrice
			li.Status = status
			li.UpdatedAt = updatedAt
		}
	})
	return nil
}

func (m *MockLineItemRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.LineItemStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if li, ok := m.items[id]; ok {
			li.Status = status
			li.UpdatedAt = updatedAt
		}
	})
	return nil
}

func (m *MockLineItemRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.LineItem, error) {
	if m.ListByTransactionFunc != nil {
		return m.ListByTransactionFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var items []*domain.LineItem
	for _, li := range m.items {
		if li.TransactionID == transactionID {
			cp := *li
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *MockLineItemRepository) SumStockDeltaByProduct(ctx context.Context, productID string) (int64, error) {
	if m.SumStockDeltaByProductFunc != nil {
		return m.SumStockDeltaByProductFunc(ctx, productID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, li := range m.items {
		if li.ProductID == productID && li.AppliedEffect() {
			sum += li.StockDelta()
		}
	}
	return sum, nil
}

func (m *MockLineItemRepository) SumAmountByTransaction(ctx context.Context, transactionID string) (decimal.Decimal, error) {
	if m.SumAmountByTransactionFunc != nil {
		return m.SumAmountByTransactionFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, li := range m.items {
		if li.TransactionID == transactionID && li.AppliedEffect() {
			sum = sum.Add(li.TotalDelta())
		}
	}
	return sum, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateTxFunc       func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListByResourceFunc func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	cp := *log
	stage(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.logs = append(m.logs, &cp)
	})
	return nil
}

func (m *MockAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	if m.ListByResourceFunc != nil {
		return m.ListByResourceFunc(ctx, resourceType, resourceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc  func(ctx context.Context, category *domain.Category) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Category, error)
	UpdateFunc  func(ctx context.Context, category *domain.Category) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MockCategoryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	categories := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return paginate(categories, limit, offset), nil
}

// MockSupplierRepository is a mock implementation of SupplierRepository.
type MockSupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*domain.Supplier

	CreateFunc  func(ctx context.Context, supplier *domain.Supplier) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Supplier, error)
	UpdateFunc  func(ctx context.Context, supplier *domain.Supplier) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Supplier, error)
}

func NewMockSupplierRepository() *MockSupplierRepository {
	return &MockSupplierRepository{suppliers: make(map[string]*domain.Supplier)}
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, supplier)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *supplier
	m.suppliers[supplier.ID] = &cp
	return nil
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.suppliers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, supplier)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[supplier.ID]; !ok {
		return domain.ErrSupplierNotFound
	}
	cp := *supplier
	m.suppliers[supplier.ID] = &cp
	return nil
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[id]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(m.suppliers, id)
	return nil
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	suppliers := make([]*domain.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		cp := *s
		suppliers = append(suppliers, &cp)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].ID < suppliers[j].ID })
	return paginate(suppliers, limit, offset), nil
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer

	CreateFunc  func(ctx context.Context, customer *domain.Customer) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Customer, error)
	UpdateFunc  func(ctx context.Context, customer *domain.Customer) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *customer
	m.customers[customer.ID] = &cp
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, customer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	cp := *customer
	m.customers[customer.ID] = &cp
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *MockCustomerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	customers := make([]*domain.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		cp := *c
		customers = append(customers, &cp)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return paginate(customers, limit, offset), nil
}

// MockCache is a mock implementation of Cache. Missing keys return
// ErrCacheMiss the way an expired Redis key would.
type MockCache struct {
	mu sync.RWMutex

	entries map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

// ErrCacheMiss is returned by MockCache.Get for absent keys.
var ErrCacheMiss = fmt.Errorf("cache: key not found")

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
