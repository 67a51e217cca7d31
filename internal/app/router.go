package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tradebook-app/tradebook/internal/dueinvoices"
	"github.com/tradebook-app/tradebook/internal/masterdata/customers"
	"github.com/tradebook-app/tradebook/internal/masterdata/products"
	"github.com/tradebook-app/tradebook/internal/masterdata/suppliers"
	"github.com/tradebook-app/tradebook/internal/payments"
	"github.com/tradebook-app/tradebook/internal/purchases"
	"github.com/tradebook-app/tradebook/internal/reports"
	"github.com/tradebook-app/tradebook/internal/sales"
	"github.com/tradebook-app/tradebook/internal/settings"
	"github.com/tradebook-app/tradebook/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Middleware         MiddlewareConfig
	ProductsHandler    *products.Handler
	CustomersHandler   *customers.Handler
	SuppliersHandler   *suppliers.Handler
	PurchasesHandler   *purchases.Handler
	SalesHandler       *sales.Handler
	PaymentsHandler    *payments.Handler
	DueInvoicesHandler *dueinvoices.Handler
	ReportsHandler     *reports.Handler
	SettingsHandler    *settings.Handler
	JobsHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with tradebook defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Middleware) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/customers", params.CustomersHandler.MountRoutes)
		r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/purchases", params.PurchasesHandler.MountRoutes)
		r.Route("/sales", params.SalesHandler.MountRoutes)
		r.Route("/payments", params.PaymentsHandler.MountRoutes)
		r.Route("/due-invoices", params.DueInvoicesHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		r.Route("/settings", params.SettingsHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
