package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/stockledger/internal/adapter/http/dto"
	"github.com/warp/stockledger/internal/usecase"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	productUC *usecase.ProductUseCase
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create creates a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create product", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	product, err := h.productUC.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// Update updates a product's catalog fields.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := h.productUC.UpdateProduct(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// Deactivate marks a product inactive.
func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	if err := h.productUC.DeactivateProduct(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to deactivate product", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists products with pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	products, err := h.productUC.ListProducts(r.Context(), usecase.ListProductsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductsFromDomain(products))
}
