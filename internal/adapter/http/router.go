package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/warp/stockledger/internal/adapter/http/handler"
	"github.com/warp/stockledger/internal/adapter/http/middleware"
	"github.com/warp/stockledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ProductHandler        *handler.ProductHandler
	SaleHandler           *handler.TransactionHandler
	PurchaseHandler       *handler.TransactionHandler
	SaleItemHandler       *handler.LineItemHandler
	PurchaseItemHandler   *handler.LineItemHandler
	CatalogHandler        *handler.CatalogHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	IdempotencyTTL        time.Duration
	RateLimiter           *middleware.RateLimiter
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Catalog
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CatalogHandler.CreateCategory)
			r.Get("/", cfg.CatalogHandler.ListCategories)
			r.Get("/{id}", cfg.CatalogHandler.GetCategory)
			r.Put("/{id}", cfg.CatalogHandler.UpdateCategory)
			r.Delete("/{id}", cfg.CatalogHandler.DeleteCategory)
		})
		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", cfg.CatalogHandler.CreateSupplier)
			r.Get("/", cfg.CatalogHandler.ListSuppliers)
			r.Get("/{id}", cfg.CatalogHandler.GetSupplier)
			r.Put("/{id}", cfg.CatalogHandler.UpdateSupplier)
			r.Delete("/{id}", cfg.CatalogHandler.DeleteSupplier)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CatalogHandler.CreateCustomer)
			r.Get("/", cfg.CatalogHandler.ListCustomers)
			r.Get("/{id}", cfg.CatalogHandler.GetCustomer)
			r.Put("/{id}", cfg.CatalogHandler.UpdateCustomer)
			r.Delete("/{id}", cfg.CatalogHandler.DeleteCustomer)
		})

		// Products
		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.Create)
			r.Get("/", cfg.ProductHandler.List)
			r.Get("/{id}", cfg.ProductHandler.Get)
			r.Put("/{id}", cfg.ProductHandler.Update)
			r.Delete("/{id}", cfg.ProductHandler.Deactivate)
		})

		// Sales and purchases share the same shape but are distinct
		// surfaces, each bound to its transaction kind.
		mountLedger(r, "/sales", cfg.SaleHandler, cfg.SaleItemHandler)
		mountLedger(r, "/purchases", cfg.PurchaseHandler, cfg.PurchaseItemHandler)

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/report", cfg.ReconciliationHandler.Report)
			r.Get("/products/{id}", cfg.ReconciliationHandler.VerifyProduct)
			r.Get("/transactions/{id}", cfg.ReconciliationHandler.VerifyTransaction)
		})
	})

	return r
}

func mountLedger(r chi.Router, pattern string, th *handler.TransactionHandler, lih *handler.LineItemHandler) {
	r.Route(pattern, func(r chi.Router) {
		r.Post("/", th.Create)
		r.Get("/", th.List)
		r.Get("/{id}", th.Get)
		r.Get("/{id}/items", lih.ListByTransaction)
		r.Post("/{id}/items", lih.Create)
		r.Get("/items/{itemID}", lih.Get)
		r.Put("/items/{itemID}", lih.Edit)
		r.Delete("/items/{itemID}", lih.Delete)
	})
}
