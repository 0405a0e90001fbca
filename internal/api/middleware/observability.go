package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// UnmatchedRoute labels requests that no route served, so 404 scans do not
// add one metric series per path.
const UnmatchedRoute = "unmatched"

// ObservabilityMiddleware traces each request and records request metrics
// labelled with the route pattern that served it. It must wrap the mux
// directly: the pattern is only known once the mux has matched.
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), "HTTP "+r.Method)
			defer span.End()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			req := r.WithContext(ctx)

			start := time.Now()
			next.ServeHTTP(rw, req)
			duration := time.Since(start)

			// The mux records the matched pattern on the request it was given.
			route := RouteOf(req)
			span.SetName(r.Method + " " + route)
			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.String("http.request_id", w.Header().Get(RequestIDHeader)),
				attribute.Int("http.status_code", rw.statusCode),
			)
			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, duration)
		})
	}
}

// RouteOf returns the path part of the mux pattern that served r, such as
// "/api/recommend/hybrid/location", or UnmatchedRoute.
func RouteOf(r *http.Request) string {
	if r.Pattern == "" {
		return UnmatchedRoute
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
