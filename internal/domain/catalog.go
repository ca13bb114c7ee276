package domain

import "time"

// Category groups products. Pure resource storage, no ledger coupling.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier is the counterparty of a purchase transaction.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer is the counterparty of a sale transaction.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
