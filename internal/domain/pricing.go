package domain

import "github.com/shopspring/decimal"

// ResolveUnitPrice resolves the unit price to record on a line item.
//
// An explicit non-zero price wins unchanged. Otherwise the product's
// selling price is used for sale lines and its cost price for purchase
// lines. A zero explicit price counts as absent, so a stored price of
// 0.00 only occurs when the product price itself is 0.00.
//
// Pure function, no side effects.
func ResolveUnitPrice(explicit *decimal.Decimal, product *Product, kind TransactionKind) (decimal.Decimal, error) {
	if explicit != nil && !explicit.IsZero() {
		return *explicit, nil
	}

	var price decimal.Decimal
	switch kind {
	case TransactionKindSale:
		price = product.SellingPrice
	case TransactionKindPurchase:
		price = product.CostPrice
	default:
		return decimal.Zero, ErrPriceUnresolved
	}

	// Price columns are non-null; a negative value means the row is corrupt.
	if price.IsNegative() {
		return decimal.Zero, ErrPriceUnresolved
	}

	return price, nil
}
