package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item whose stock is tracked by the ledger.
//
// StockQuantity is owned by the line-item ledger: it only moves through
// ledger operations, never through product updates. InitialStock is the
// reconciliation baseline, frozen at creation time.
type Product struct {
	ID            string
	Name          string
	Description   string
	CategoryID    string
	SellingPrice  decimal.Decimal
	CostPrice     decimal.Decimal
	StockQuantity int64
	InitialStock  int64
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyStockDelta returns the stock level after applying a signed delta.
// No floor is enforced: stock may go negative (backorder-permissive).
func (p *Product) ApplyStockDelta(delta int64) int64 {
	return p.StockQuantity + delta
}
