package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/northlight-bi/northlight/internal/analytics"
	"github.com/northlight-bi/northlight/internal/customers"
	"github.com/northlight-bi/northlight/internal/observability"
	"github.com/northlight-bi/northlight/internal/orders"
	"github.com/northlight-bi/northlight/internal/products"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AnalyticsHandler *analytics.Handler
	OrdersHandler    *orders.Handler
	ProductsHandler  *products.Handler
	CustomersHandler *customers.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Northlight defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		params.AnalyticsHandler.MountRoutes(api)
		params.OrdersHandler.MountRoutes(api)
		params.ProductsHandler.MountRoutes(api)
		params.CustomersHandler.MountRoutes(api)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
