package api

import (
	"net/http"

	"github.com/phrazzld/productgen/internal/api/shared"
	"github.com/phrazzld/productgen/internal/generation"
)

// AvailabilityChecker reports whether a capability has a configured backend.
// *generation.Registry implements it.
type AvailabilityChecker interface {
	Available(capability generation.Capability) bool
}

// HealthHandler serves GET /health. The service is live even when no
// backend is configured; the body shows which capabilities can be served.
type HealthHandler struct {
	backends AvailabilityChecker
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(backends AvailabilityChecker) *HealthHandler {
	return &HealthHandler{backends: backends}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Backends: map[string]bool{}}
	if h.backends != nil {
		for _, c := range []generation.Capability{generation.CapabilityText, generation.CapabilityVision} {
			resp.Backends[string(c)] = h.backends.Available(c)
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
