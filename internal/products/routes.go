package products

import "github.com/go-chi/chi/v5"

// MountRoutes registers the product catalog endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/products", h.handleList)
	r.Get("/products/categories", h.handleCategories)
	r.Get("/products/stats", h.handleStats)
}
