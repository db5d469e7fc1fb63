package orders

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/platform/httpx"
	"github.com/northlight-bi/northlight/internal/shared"
)

const stateEntity = "orders"

var filterNames = []string{"status"}

// Handler serves the orders list, detail and stats endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	states  *listview.Store
	perPage int
}

// NewHandler constructs the orders HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, states *listview.Store, perPage int) *Handler {
	return &Handler{logger: logger, service: service, states: states, perPage: perPage}
}

type listResponse struct {
	Rows  []Order           `json:"rows"`
	Meta  shared.Pagination `json:"meta"`
	State listview.State    `json:"state"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := listview.EnsureSession(w, r)

	st, err := h.states.Load(ctx, session, stateEntity, DefaultState(h.perPage))
	if err != nil {
		h.logger.Warn("load view state", slog.Any("error", err))
		st = DefaultState(h.perPage)
	}
	st = listview.Apply(st, r.URL.Query(), filterNames)

	page, err := h.service.Fetch(ctx, st)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	st.Total = page.Meta.Total
	if err := h.states.Save(ctx, session, stateEntity, st); err != nil {
		h.logger.Warn("save view state", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, listResponse{Rows: page.Rows, Meta: page.Meta, State: st})
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "order id must be numeric")
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
		h.logger.Error("order stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
