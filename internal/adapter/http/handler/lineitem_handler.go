package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/stockledger/internal/adapter/http/dto"
	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// LineItemHandler handles line-item HTTP requests for one transaction
// kind.
type LineItemHandler struct {
	ledgerUC *usecase.LedgerUseCase
	kind     domain.TransactionKind
}

// NewLineItemHandler creates a new LineItemHandler for one kind.
func NewLineItemHandler(ledgerUC *usecase.LedgerUseCase, kind domain.TransactionKind) *LineItemHandler {
	return &LineItemHandler{ledgerUC: ledgerUC, kind: kind}
}

// Create records a line item on a transaction and applies its stock and
// total effect.
func (h *LineItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.CreateLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.ledgerUC.CreateLineItem(r.Context(), req.ToUseCaseInput(h.kind, transactionID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create line item", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LineItemFromDomain(item))
}

// Get retrieves a line item by ID.
func (h *LineItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, dto.LineItemFromDomain(item))
}

// Edit rewrites a line item's quantity or price, retracting the old
// effect and applying the new one atomically.
func (h *LineItemHandler) Edit(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.EditLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	edited, err := h.ledgerUC.EditLineItem(r.Context(), req.ToUseCaseInput(item.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to edit line item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LineItemFromDomain(edited))
}

// Delete reverses a line item, retracting its effect.
func (h *LineItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.ledgerUC.DeleteLineItem(r.Context(), item.ID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete line item", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByTransaction lists a transaction's line items.
func (h *LineItemHandler) ListByTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	items, err := h.ledgerUC.ListLineItems(r.Context(), transactionID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list line items", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LineItemsFromDomain(items))
}

// lookup fetches the line item behind the route and checks it belongs to
// the handler's surface: a sale item is not reachable through the
// purchases routes.
func (h *LineItemHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.LineItem, bool) {
	id := chi.URLParam(r, "itemID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing line item ID", "")
		return nil, false
	}

	item, err := h.ledgerUC.GetLineItem(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get line item", err.Error())
		return nil, false
	}

	if item.TransactionKind != h.kind {
		writeError(w, http.StatusNotFound, "failed to get line item", domain.ErrLineItemNotFound.Error())
		return nil, false
	}

	return item, true
}
