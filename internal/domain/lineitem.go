package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemStatus is the application state of a line item's effect on
// product stock and transaction total.
type LineItemStatus string

const (
	// LineItemStatusPending means the item is persisted but its effect
	// has not been committed yet.
	LineItemStatusPending LineItemStatus = "pending"
	// LineItemStatusApplied means the effect of the creating write has
	// been committed exactly once.
	LineItemStatusApplied LineItemStatus = "applied"
	// LineItemStatusReversed means the effect has been retracted.
	// Terminal: a reversed item can no longer be edited or deleted.
	LineItemStatusReversed LineItemStatus = "reversed"
	// LineItemStatusReapplied means the original effect was retracted
	// and a newly computed effect committed in its place (edit path).
	LineItemStatusReapplied LineItemStatus = "reapplied"
)

// LineItem is a single product/quantity/price record attached to exactly
// one sale or purchase transaction.
type LineItem struct {
	ID              string
	TransactionID   string
	TransactionKind TransactionKind
	ProductID       string
	Quantity        int64
	UnitPrice       decimal.Decimal
	Status          LineItemStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate validates a line item before its effect is applied.
func (li *LineItem) Validate() error {
	if li.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !li.TransactionKind.Valid() {
		return ErrKindMismatch
	}
	return nil
}

// StockDelta is the signed quantity this item contributes to its
// product's stock: +quantity for purchase lines, -quantity for sale lines.
func (li *LineItem) StockDelta() int64 {
	return li.TransactionKind.StockSign() * li.Quantity
}

// TotalDelta is the signed amount this item contributes to its
// transaction's total: quantity x unit price.
func (li *LineItem) TotalDelta() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// AppliedEffect reports whether the item currently contributes to stock
// and total (applied or reapplied, not reversed).
func (li *LineItem) AppliedEffect() bool {
	return li.Status == LineItemStatusApplied || li.Status == LineItemStatusReapplied
}
