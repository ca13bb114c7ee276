package dto

import (
	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	InitialStock int64           `json:"initial_stock"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:         r.Name,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		SellingPrice: r.SellingPrice,
		CostPrice:    r.CostPrice,
		InitialStock: r.InitialStock,
	}
}

// UpdateProductRequest represents a request to update a product's catalog
// fields. Absent fields keep their stored values; stock has no field here
// at all.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateProductRequest) ToUseCaseInput(id string) usecase.UpdateProductInput {
	return usecase.UpdateProductInput{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		SellingPrice: r.SellingPrice,
		CostPrice:    r.CostPrice,
		Active:       r.Active,
	}
}

// CreateTransactionRequest represents a request to open a sale or
// purchase.
type CreateTransactionRequest struct {
	CounterpartyID string `json:"counterparty_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(kind domain.TransactionKind) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		Kind:           kind,
		CounterpartyID: r.CounterpartyID,
	}
}

// CreateLineItemRequest represents a request to record a line item. A nil
// or zero unit price defers to the product's default for the transaction
// kind.
type CreateLineItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLineItemRequest) ToUseCaseInput(kind domain.TransactionKind, transactionID string) usecase.CreateLineItemInput {
	return usecase.CreateLineItemInput{
		Kind:          kind,
		TransactionID: transactionID,
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
	}
}

// EditLineItemRequest represents a request to edit a line item. Absent
// fields keep their stored values.
type EditLineItemRequest struct {
	Quantity  *int64           `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *EditLineItemRequest) ToUseCaseInput(lineItemID string) usecase.EditLineItemInput {
	return usecase.EditLineItemInput{
		LineItemID: lineItemID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
	}
}

// CreateCategoryRequest represents a request to create or rename a
// category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CounterpartyRequest represents a request to create or update a supplier
// or customer.
type CounterpartyRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CounterpartyRequest) ToUseCaseInput() usecase.CounterpartyInput {
	return usecase.CounterpartyInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}
