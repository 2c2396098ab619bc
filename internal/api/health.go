package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler handles the liveness check endpoint.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health returns a fixed OK status. There is no datastore or other local
// dependency to probe; the completion endpoint is deliberately not checked
// here to keep the liveness probe cheap and side-effect free.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterHealth registers the health check route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}
