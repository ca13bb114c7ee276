package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
	"github.com/warp/stockledger/internal/usecase/mocks"
)

func newCatalogUseCase() *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(
		mocks.NewMockCategoryRepository(),
		mocks.NewMockSupplierRepository(),
		mocks.NewMockCustomerRepository(),
		mocks.NewMockIDGenerator(),
	)
}

func TestCatalogUseCase_CategoryLifecycle(t *testing.T) {
	uc := newCatalogUseCase()
	ctx := context.Background()

	category, err := uc.CreateCategory(ctx, "Electronics")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	renamed, err := uc.UpdateCategory(ctx, category.ID, "Appliances")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if renamed.Name != "Appliances" {
		t.Errorf("name = %s, want Appliances", renamed.Name)
	}

	if err := uc.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.GetCategory(ctx, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCatalogUseCase_CreateCategory_InvalidName(t *testing.T) {
	uc := newCatalogUseCase()

	if _, err := uc.CreateCategory(context.Background(), ""); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("error = %v, want ErrInvalidName", err)
	}
}

func TestCatalogUseCase_SupplierLifecycle(t *testing.T) {
	uc := newCatalogUseCase()
	ctx := context.Background()

	supplier, err := uc.CreateSupplier(ctx, usecase.CounterpartyInput{
		Name:  "Globex",
		Email: "orders@globex.example",
		Phone: "555-0100",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := uc.UpdateSupplier(ctx, supplier.ID, usecase.CounterpartyInput{
		Name:    "Globex Corp",
		Address: "1 Industry Way",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Globex Corp" || updated.Address != "1 Industry Way" {
		t.Errorf("updated = %+v", updated)
	}

	if err := uc.DeleteSupplier(ctx, supplier.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.GetSupplier(ctx, supplier.ID); !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Errorf("error = %v, want ErrSupplierNotFound", err)
	}
}

func TestCatalogUseCase_CustomerLifecycle(t *testing.T) {
	uc := newCatalogUseCase()
	ctx := context.Background()

	customer, err := uc.CreateCustomer(ctx, usecase.CounterpartyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.GetCustomer(ctx, customer.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := uc.DeleteCustomer(ctx, customer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.GetCustomer(ctx, customer.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("error = %v, want ErrCustomerNotFound", err)
	}
}

func TestCatalogUseCase_InvalidEmail(t *testing.T) {
	uc := newCatalogUseCase()

	_, err := uc.CreateCustomer(context.Background(), usecase.CounterpartyInput{
		Name:  "Acme",
		Email: "not-an-email",
	})
	if !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("error = %v, want ErrInvalidEmail", err)
	}
}

func TestCatalogUseCase_ListPagination(t *testing.T) {
	uc := newCatalogUseCase()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := uc.CreateCategory(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	categories, err := uc.ListCategories(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("len = %d, want 2", len(categories))
	}

	categories, err = uc.ListCategories(ctx, 0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("len = %d, want 1", len(categories))
	}
}
