package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/tripwise/internal/api/handlers"
	"github.com/zatekoja/tripwise/internal/api/routes"
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/pkg/geo"
)

type stubService struct{}

func (stubService) Recommend(ctx context.Context, userID string, limit int) ([]*entities.Place, error) {
	return []*entities.Place{{ID: "amber"}}, nil
}

func (stubService) RecommendNear(ctx context.Context, userID string, center *geo.Coordinates, radiusKm *float64, limit int) ([]*entities.Place, error) {
	return []*entities.Place{}, nil
}

func TestRouter(t *testing.T) {
	handler := routes.NewRouter(handlers.NewRecommendationHandler(stubService{}), nil, nil).SetupRoutes()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"hybrid", http.MethodGet, "/api/recommend/hybrid", http.StatusOK},
		{"hybrid by location", http.MethodGet, "/api/recommend/hybrid/location?lat=1&lng=2", http.StatusOK},
		{"wrong method", http.MethodPost, "/api/recommend/hybrid", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/recommend/other", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set(handlers.UserIDHeader, "u-1")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}
