package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidPrice = errors.New("price must not be negative")
)

// Validation constants
const (
	MaxNameLength = 100
	MinNameLength = 1
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateName validates a resource name (product, category, counterparty).
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format. Empty is allowed: the original
// schema keeps counterparty emails nullable.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePrice validates a product price field.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
