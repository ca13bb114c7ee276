package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
)

// ProductUseCase handles product catalog logic. Stock itself is owned by
// the ledger: product updates never touch StockQuantity.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
	cache       Cache
}

// NewProductUseCase creates a new ProductUseCase. cache may be nil, in
// which case every read goes to the repository.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator, cache Cache) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	Name         string
	Description  string
	CategoryID   string
	SellingPrice decimal.Decimal
	CostPrice    decimal.Decimal
	InitialStock int64
}

// CreateProduct creates a new product. InitialStock becomes both the
// opening stock level and the reconciliation baseline.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(input.SellingPrice); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(input.CostPrice); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	product := &domain.Product{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		SellingPrice:  input.SellingPrice,
		CostPrice:     input.CostPrice,
		StockQuantity: input.InitialStock,
		InitialStock:  input.InitialStock,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID, serving from cache when a fresh
// entry exists. Cached stock may lag the ledger by up to ProductCacheTTL.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, productCacheKey(id)); err == nil {
			var product domain.Product
			if err := json.Unmarshal([]byte(raw), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cacheProduct(ctx, product)

	return product, nil
}

func productCacheKey(id string) string {
	return "product:" + id
}

// cacheProduct stores a product read-through copy. Cache failures are
// invisible to callers.
func (uc *ProductUseCase) cacheProduct(ctx context.Context, product *domain.Product) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, productCacheKey(product.ID), string(raw), ProductCacheTTL)
}

// UpdateProductInput represents input for updating a product. Nil fields
// keep the stored value. Stock quantity is deliberately absent.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	CategoryID   *string
	SellingPrice *decimal.Decimal
	CostPrice    *decimal.Decimal
	Active       *bool
	ID           string
}

// UpdateProduct updates a product's catalog fields.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.SellingPrice != nil {
		if err := domain.ValidatePrice(*input.SellingPrice); err != nil {
			return nil, err
		}
		product.SellingPrice = *input.SellingPrice
	}
	if input.CostPrice != nil {
		if err := domain.ValidatePrice(*input.CostPrice); err != nil {
			return nil, err
		}
		product.CostPrice = *input.CostPrice
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, productCacheKey(product.ID))
	}

	return product, nil
}

// DeactivateProduct marks a product inactive. Rows are never deleted:
// line items keep referencing them.
func (uc *ProductUseCase) DeactivateProduct(ctx context.Context, id string) error {
	active := false
	_, err := uc.UpdateProduct(ctx, UpdateProductInput{ID: id, Active: &active})
	return err
}

// ListProductsInput represents input for listing products.
type ListProductsInput struct {
	Limit  int
	Offset int
}

// ListProducts lists products with pagination.
func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	if input.Limit <= 0 {
		limit = 20
	}
	return uc.productRepo.List(ctx, limit, offset)
}
