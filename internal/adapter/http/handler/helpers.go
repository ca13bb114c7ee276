package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/warp/stockledger/internal/adapter/http/dto"
	"github.com/warp/stockledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrLineItemNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSupplierNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrPriceUnresolved),
		errors.Is(err, domain.ErrKindMismatch),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLineItemReversed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrentConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
