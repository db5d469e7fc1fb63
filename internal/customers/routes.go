package customers

import "github.com/go-chi/chi/v5"

// MountRoutes registers the customer directory endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/customers", h.handleList)
	r.Get("/customers/filters", h.handleFilters)
	r.Get("/customers/stats", h.handleStats)
	r.Get("/customers/{id}", h.handleShow)
}
