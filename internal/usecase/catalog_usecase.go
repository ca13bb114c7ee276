package usecase

import (
	"context"
	"time"

	"github.com/warp/stockledger/internal/domain"
)

// CatalogUseCase handles the plain CRUD resources: categories, suppliers
// and customers. No ledger coupling.
type CatalogUseCase struct {
	categoryRepo CategoryRepository
	supplierRepo SupplierRepository
	customerRepo CustomerRepository
	idGen        IDGenerator
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(
	categoryRepo CategoryRepository,
	supplierRepo SupplierRepository,
	customerRepo CustomerRepository,
	idGen IDGenerator,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		idGen:        idGen,
	}
}

// CreateCategory creates a category.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// UpdateCategory renames a category.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.categoryRepo.Delete(ctx, id)
}

// ListCategories lists categories with pagination.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	limit, offset = clampListPage(limit, offset)
	return uc.categoryRepo.List(ctx, limit, offset)
}

// CounterpartyInput carries the shared fields of suppliers and customers.
type CounterpartyInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

func (in CounterpartyInput) validate() error {
	if err := domain.ValidateName(in.Name); err != nil {
		return err
	}
	return domain.ValidateEmail(in.Email)
}

// CreateSupplier creates a supplier.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, input CounterpartyInput) (*domain.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	supplier := &domain.Supplier{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID.
func (uc *CatalogUseCase) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	return uc.supplierRepo.GetByID(ctx, id)
}

// UpdateSupplier updates a supplier.
func (uc *CatalogUseCase) UpdateSupplier(ctx context.Context, id string, input CounterpartyInput) (*domain.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = input.Name
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Address = input.Address
	supplier.UpdatedAt = time.Now().UTC()

	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier.
func (uc *CatalogUseCase) DeleteSupplier(ctx context.Context, id string) error {
	return uc.supplierRepo.Delete(ctx, id)
}

// ListSuppliers lists suppliers with pagination.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	limit, offset = clampListPage(limit, offset)
	return uc.supplierRepo.List(ctx, limit, offset)
}

// CreateCustomer creates a customer.
func (uc *CatalogUseCase) CreateCustomer(ctx context.Context, input CounterpartyInput) (*domain.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CatalogUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// UpdateCustomer updates a customer.
func (uc *CatalogUseCase) UpdateCustomer(ctx context.Context, id string, input CounterpartyInput) (*domain.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address
	customer.UpdatedAt = time.Now().UTC()

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer.
func (uc *CatalogUseCase) DeleteCustomer(ctx context.Context, id string) error {
	return uc.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with pagination.
func (uc *CatalogUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	limit, offset = clampListPage(limit, offset)
	return uc.customerRepo.List(ctx, limit, offset)
}

func clampListPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
