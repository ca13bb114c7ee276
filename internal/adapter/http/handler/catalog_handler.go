package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/stockledger/internal/adapter/http/dto"
	"github.com/warp/stockledger/internal/usecase"
)

// CatalogHandler handles category, supplier and customer HTTP requests.
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// CreateCategory creates a category.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.catalogUC.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create category", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// GetCategory retrieves a category by ID.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogUC.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get category", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// UpdateCategory renames a category.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.catalogUC.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update category", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// DeleteCategory deletes a category.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUC.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete category", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories lists categories with pagination.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUC.ListCategories(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// CreateSupplier creates a supplier.
func (h *CatalogHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.CounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	supplier, err := h.catalogUC.CreateSupplier(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SupplierFromDomain(supplier))
}

// GetSupplier retrieves a supplier by ID.
func (h *CatalogHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.catalogUC.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SupplierFromDomain(supplier))
}

// UpdateSupplier updates a supplier.
func (h *CatalogHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.CounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	supplier, err := h.catalogUC.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update supplier", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SupplierFromDomain(supplier))
}

// DeleteSupplier deletes a supplier.
func (h *CatalogHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUC.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete supplier", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSuppliers lists suppliers with pagination.
func (h *CatalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.catalogUC.ListSuppliers(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list suppliers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SuppliersFromDomain(suppliers))
}

// CreateCustomer creates a customer.
func (h *CatalogHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.catalogUC.CreateCustomer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create customer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// GetCustomer retrieves a customer by ID.
func (h *CatalogHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.catalogUC.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get customer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// UpdateCustomer updates a customer.
func (h *CatalogHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CounterpartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.catalogUC.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update customer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// DeleteCustomer deletes a customer.
func (h *CatalogHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUC.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete customer", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCustomers lists customers with pagination.
func (h *CatalogHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.catalogUC.ListCustomers(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomersFromDomain(customers))
}
