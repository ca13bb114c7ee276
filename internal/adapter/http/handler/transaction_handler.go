package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/stockledger/internal/adapter/http/dto"
	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/usecase"
)

// TransactionHandler handles sale and purchase HTTP requests. One handler
// instance serves one kind, so the sales and purchases routes stay
// separate surfaces over the same use case.
type TransactionHandler struct {
	transactionUC *usecase.TransactionUseCase
	kind          domain.TransactionKind
}

// NewTransactionHandler creates a new TransactionHandler for one kind.
func NewTransactionHandler(transactionUC *usecase.TransactionUseCase, kind domain.TransactionKind) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC, kind: kind}
}

// Create opens a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.CreateTransaction(r.Context(), req.ToUseCaseInput(h.kind))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.transactionUC.GetTransaction(r.Context(), id, h.kind)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists transactions of the handler's kind.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		Kind:   h.kind,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}
