package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes sales from purchases.
type TransactionKind string

const (
	TransactionKindSale     TransactionKind = "sale"
	TransactionKindPurchase TransactionKind = "purchase"
)

// Valid reports whether the kind is a known transaction kind.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindSale || k == TransactionKindPurchase
}

// StockSign is the direction a line item of this kind moves product stock:
// purchases receive stock, sales release it.
func (k TransactionKind) StockSign() int64 {
	if k == TransactionKindPurchase {
		return 1
	}
	return -1
}

// Transaction represents a sale or purchase whose running total is
// accumulated by the ledger. CounterpartyID references the customer for
// sales and the supplier for purchases.
type Transaction struct {
	ID             string
	Kind           TransactionKind
	CounterpartyID string
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
