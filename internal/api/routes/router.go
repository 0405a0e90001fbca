package routes

import (
	"net/http"

	"github.com/zatekoja/tripwise/internal/api/handlers"
	"github.com/zatekoja/tripwise/internal/api/middleware"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	metrics               *observability.Metrics
	allowedOrigins        []string
}

// NewRouter creates a new router. metrics may be nil; no allowed origins
// means any origin.
func NewRouter(recommendationHandler *handlers.RecommendationHandler, metrics *observability.Metrics, allowedOrigins []string) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		recommendationHandler: recommendationHandler,
		metrics:               metrics,
		allowedOrigins:        allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /api/recommend/hybrid", r.recommendationHandler.GetHybrid)
	r.mux.HandleFunc("GET /api/recommend/hybrid/location", r.recommendationHandler.GetHybridByLocation)

	// Last applied runs first. Observability wraps the mux directly so it
	// sees the matched route pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
