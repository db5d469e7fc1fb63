package customers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/platform/httpx"
	"github.com/northlight-bi/northlight/internal/shared"
)

const stateEntity = "customers"

var filterNames = []string{FilterCountry, FilterCity, FilterSegment}

// Handler serves the customer directory endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	states  *listview.Store
}

// NewHandler constructs the customers HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, states *listview.Store) *Handler {
	return &Handler{logger: logger, service: service, states: states}
}

type listResponse struct {
	Rows  []Customer        `json:"rows"`
	Meta  shared.Pagination `json:"meta"`
	State listview.State    `json:"state"`
}

type filtersResponse struct {
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := listview.EnsureSession(w, r)

	st, err := h.states.Load(ctx, session, stateEntity, h.service.DefaultState())
	if err != nil {
		h.logger.Warn("load view state", slog.Any("error", err))
		st = h.service.DefaultState()
	}
	prevCountry := st.Filter(FilterCountry)
	st = listview.Apply(st, r.URL.Query(), filterNames)

	// A country change narrows which cities exist, so the stale city filter
	// resets unless the same request picked a new one.
	if st.Filter(FilterCountry) != prevCountry && !r.URL.Query().Has(FilterCity) {
		st = st.WithFilter(FilterCity, listview.All)
	}

	page, err := h.service.Fetch(ctx, st)
	if err != nil {
		h.logger.Error("list customers failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	st.Total = page.Meta.Total
	if err := h.states.Save(ctx, session, stateEntity, st); err != nil {
		h.logger.Warn("save view state", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, listResponse{Rows: page.Rows, Meta: page.Meta, State: st})
}

func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countries, err := h.service.Countries(ctx)
	if err != nil {
		h.logger.Error("list countries failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	cities, err := h.service.Cities(ctx)
	if err != nil {
		h.logger.Error("list cities failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, filtersResponse{Countries: countries, Cities: cities})
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "customer id is required")
		return
	}
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("customer stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
