package routes

import (
	"net/http"

	"github.com/caresight/facilityfinder/internal/api/handlers"
	"github.com/caresight/facilityfinder/internal/api/middleware"
	"github.com/caresight/facilityfinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityHandler *handlers.FacilityHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(facilityHandler *handlers.FacilityHandler, metrics *observability.Metrics) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		facilityHandler: facilityHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Facility discovery endpoint
	r.mux.HandleFunc("GET /api/facilities/nearby", r.facilityHandler.NearbyFacilities)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so headers are set on every response
	handler = middleware.CORSMiddleware(handler)

	return handler
}
