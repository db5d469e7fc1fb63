package analytics

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/northlight-bi/northlight/internal/observability"
	"github.com/northlight-bi/northlight/internal/platform/httpx"
	"github.com/northlight-bi/northlight/internal/shared"
)

// Handler serves the analytical reports as JSON.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler constructs the analytics HTTP handler. metrics may be nil.
func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		metrics:  metrics,
		validate: validator.New(),
	}
}

type reportQuery struct {
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
	Limit int    `validate:"gte=0,lte=100"`
}

func (h *Handler) parseQuery(r *http.Request) (shared.DateRange, int, error) {
	q := reportQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return shared.DateRange{}, 0, fmt.Errorf("%w: limit %q", httpx.ErrValidation, raw)
		}
		q.Limit = n
	}
	if err := h.validate.Struct(q); err != nil {
		return shared.DateRange{}, 0, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	rng := shared.DateRange{Start: q.Start, End: q.End}
	if err := rng.Validate(); err != nil {
		return shared.DateRange{}, 0, err
	}
	return rng, q.Limit, nil
}

// report runs one report closure and writes the JSON result or problem.
func (h *Handler) report(w http.ResponseWriter, r *http.Request, name string, fn func(rng shared.DateRange, limit int) (any, error)) {
	rng, limit, err := h.parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	start := time.Now()
	data, err := fn(rng, limit)
	h.metrics.ObserveReport(name, time.Since(start))
	if err != nil {
		h.logger.Error("report failed", slog.String("report", name), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "dashboard", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.Dashboard(r.Context(), rng)
	})
}

func (h *Handler) handleRevenueTrend(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "revenue_trend", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.RevenueTrend(r.Context(), rng)
	})
}

func (h *Handler) handleOrderVolume(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "order_volume", func(_ shared.DateRange, _ int) (any, error) {
		return h.service.OrderVolume(r.Context())
	})
}

func (h *Handler) handleCategoryProfitability(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "category_profitability", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.CategoryProfitability(r.Context(), rng)
	})
}

func (h *Handler) handleCustomerSegments(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "customer_segments", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.CustomerSegments(r.Context(), rng)
	})
}

func (h *Handler) handleTopCustomers(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "top_customers", func(rng shared.DateRange, limit int) (any, error) {
		return h.service.TopCustomers(r.Context(), rng, limit)
	})
}

func (h *Handler) handleEmployeePerformance(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "employee_performance", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.EmployeePerformance(r.Context(), rng)
	})
}

func (h *Handler) handleSeasonalPatterns(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "seasonal_patterns", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.SeasonalPatterns(r.Context(), rng)
	})
}

func (h *Handler) handleCountrySales(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "country_sales", func(rng shared.DateRange, limit int) (any, error) {
		return h.service.CountrySales(r.Context(), rng, limit)
	})
}

func (h *Handler) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, "order_status", func(rng shared.DateRange, _ int) (any, error) {
		return h.service.OrderStatusBreakdown(r.Context(), rng)
	})
}

func (h *Handler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	h.report(w, r, "top_products", func(rng shared.DateRange, limit int) (any, error) {
		if by == "quantity" {
			return h.service.TopProductsByQuantity(r.Context(), rng, limit)
		}
		return h.service.TopProductsByRevenue(r.Context(), rng, limit)
	})
}
