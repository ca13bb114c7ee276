package domain

import "errors"

var (
	// Ledger errors
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrPriceUnresolved    = errors.New("unit price could not be resolved")
	ErrKindMismatch       = errors.New("line item kind does not match transaction kind")
	ErrLineItemReversed   = errors.New("line item has already been reversed")
	ErrConcurrentConflict = errors.New("concurrent update conflict")
	ErrPartialApplication = errors.New("ledger operation could not commit atomically")

	// Lookup errors
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrLineItemNotFound    = errors.New("line item not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrCustomerNotFound    = errors.New("customer not found")
)
