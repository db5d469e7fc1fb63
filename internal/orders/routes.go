package orders

import "github.com/go-chi/chi/v5"

// MountRoutes registers the order endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/orders", h.handleList)
	r.Get("/orders/stats", h.handleStats)
	r.Get("/orders/{id}", h.handleShow)
}
