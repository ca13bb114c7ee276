package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int64           `json:"stock_quantity"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SellingPrice:  p.SellingPrice,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// TransactionResponse represents a sale or purchase in API responses.
type TransactionResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             t.ID,
		Kind:           string(t.Kind),
		CounterpartyID: t.CounterpartyID,
		Total:          t.Total,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LineItemFromDomain converts a domain line item to a response.
func LineItemFromDomain(item *domain.LineItem) *LineItemResponse {
	return &LineItemResponse{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		Amount:        item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
		Status:        string(item.Status),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// LineItemsFromDomain converts domain line items to responses.
func LineItemsFromDomain(items []*domain.LineItem) []*LineItemResponse {
	result := make([]*LineItemResponse, len(items))
	for i, item := range items {
		result[i] = LineItemFromDomain(item)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// CounterpartyResponse represents a supplier or customer in API
// responses.
type CounterpartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierFromDomain converts a domain supplier to a response.
func SupplierFromDomain(s *domain.Supplier) *CounterpartyResponse {
	return &CounterpartyResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// SuppliersFromDomain converts domain suppliers to responses.
func SuppliersFromDomain(suppliers []*domain.Supplier) []*CounterpartyResponse {
	result := make([]*CounterpartyResponse, len(suppliers))
	for i, s := range suppliers {
		result[i] = SupplierFromDomain(s)
	}
	return result
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CounterpartyResponse {
	return &CounterpartyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CounterpartyResponse {
	result := make([]*CounterpartyResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// StockCheckResponse represents one product's reconciliation outcome.
type StockCheckResponse struct {
	ProductID string    `json:"product_id"`
	Expected  int64     `json:"expected"`
	Actual    int64     `json:"actual"`
	Drift     int64     `json:"drift"`
	OK        bool      `json:"ok"`
	CheckedAt time.Time `json:"checked_at"`
}

// StockCheckFromUseCase converts a stock check result to a response.
func StockCheckFromUseCase(r *usecase.StockCheckResult) *StockCheckResponse {
	return &StockCheckResponse{
		ProductID: r.ProductID,
		Expected:  r.Expected,
		Actual:    r.Actual,
		Drift:     r.Drift,
		OK:        r.OK,
		CheckedAt: r.CheckedAt,
	}
}

// TotalCheckResponse represents one transaction's reconciliation outcome.
type TotalCheckResponse struct {
	TransactionID string          `json:"transaction_id"`
	Expected      decimal.Decimal `json:"expected"`
	Actual        decimal.Decimal `json:"actual"`
	Drift         decimal.Decimal `json:"drift"`
	OK            bool            `json:"ok"`
	CheckedAt     time.Time       `json:"checked_at"`
}

// TotalCheckFromUseCase converts a total check result to a response.
func TotalCheckFromUseCase(r *usecase.TotalCheckResult) *TotalCheckResponse {
	return &TotalCheckResponse{
		TransactionID: r.TransactionID,
		Expected:      r.Expected,
		Actual:        r.Actual,
		Drift:         r.Drift,
		OK:            r.OK,
		CheckedAt:     r.CheckedAt,
	}
}

// ReportResponse represents a full reconciliation sweep.
type ReportResponse struct {
	CheckedAt           time.Time             `json:"checked_at"`
	Consistent          bool                  `json:"consistent"`
	ProductsChecked     int                   `json:"products_checked"`
	TransactionsChecked int                   `json:"transactions_checked"`
	StockDrift          []*StockCheckResponse `json:"stock_drift,omitempty"`
	TotalDrift          []*TotalCheckResponse `json:"total_drift,omitempty"`
}

// ReportFromUseCase converts a reconciliation report to a response.
func ReportFromUseCase(r *usecase.Report) *ReportResponse {
	resp := &ReportResponse{
		CheckedAt:           r.CheckedAt,
		Consistent:          r.Consistent,
		ProductsChecked:     r.ProductsChecked,
		TransactionsChecked: r.TransactionsChecked,
	}
	for _, s := range r.StockDrift {
		resp.StockDrift = append(resp.StockDrift, StockCheckFromUseCase(s))
	}
	for _, t := range r.TotalDrift {
		resp.TotalDrift = append(resp.TotalDrift, TotalCheckFromUseCase(t))
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
