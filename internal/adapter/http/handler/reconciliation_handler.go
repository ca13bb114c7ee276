package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/stockledger/internal/adapter/http/dto"
	"github.com/warp/stockledger/internal/usecase"
)

// ReconciliationHandler handles reconciliation HTTP requests.
type ReconciliationHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC *usecase.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// Report runs a full reconciliation sweep.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.GenerateReport(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromUseCase(report))
}

// VerifyProduct checks one product's stored stock against its
// recomputation.
func (h *ReconciliationHandler) VerifyProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciliationUC.VerifyProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StockCheckFromUseCase(result))
}

// VerifyTransaction checks one transaction's stored total against its
// recomputation.
func (h *ReconciliationHandler) VerifyTransaction(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciliationUC.VerifyTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalCheckFromUseCase(result))
}
