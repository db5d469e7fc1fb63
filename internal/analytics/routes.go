package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the report endpoints. The dashboard fan-out is the
// heaviest call, so it sits behind a per-client rate limit.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/analytics/dashboard", h.handleDashboard)
	})

	r.Get("/analytics/revenue-trend", h.handleRevenueTrend)
	r.Get("/analytics/order-volume", h.handleOrderVolume)
	r.Get("/analytics/category-profitability", h.handleCategoryProfitability)
	r.Get("/analytics/customer-segments", h.handleCustomerSegments)
	r.Get("/analytics/top-customers", h.handleTopCustomers)
	r.Get("/analytics/employee-performance", h.handleEmployeePerformance)
	r.Get("/analytics/seasonal-patterns", h.handleSeasonalPatterns)
	r.Get("/analytics/country-sales", h.handleCountrySales)
	r.Get("/analytics/order-status", h.handleOrderStatus)
	r.Get("/analytics/top-products", h.handleTopProducts)
}
