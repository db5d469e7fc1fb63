package products

import (
	"log/slog"
	"net/http"

	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/platform/httpx"
	"github.com/northlight-bi/northlight/internal/shared"
)

const stateEntity = "products"

var filterNames = []string{FilterCategory}

// Handler serves the product catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	states  *listview.Store
}

// NewHandler constructs the products HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, states *listview.Store) *Handler {
	return &Handler{logger: logger, service: service, states: states}
}

type listResponse struct {
	Rows  []Product         `json:"rows"`
	Meta  shared.Pagination `json:"meta"`
	State listview.State    `json:"state"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := listview.EnsureSession(w, r)

	st, err := h.states.Load(ctx, session, stateEntity, h.service.DefaultState())
	if err != nil {
		h.logger.Warn("load view state", slog.Any("error", err))
		st = h.service.DefaultState()
	}
	st = listview.Apply(st, r.URL.Query(), filterNames)

	page, err := h.service.Fetch(ctx, st)
	if err != nil {
		h.logger.Error("list products failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	st.Total = page.Meta.Total
	if err := h.states.Save(ctx, session, stateEntity, st); err != nil {
		h.logger.Warn("save view state", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, listResponse{Rows: page.Rows, Meta: page.Meta, State: st})
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string][]string{"categories": names})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("product stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
