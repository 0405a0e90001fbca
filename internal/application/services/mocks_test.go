package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/pkg/geo"
)

// Mocks

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) ListAll(ctx context.Context) ([]*entities.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Plan), args.Error(1)
}

type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) ListAll(ctx context.Context) ([]*entities.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Place), args.Error(1)
}

func (m *MockPlaceRepository) UpsertMany(ctx context.Context, places []*entities.Place) error {
	args := m.Called(ctx, places)
	return args.Error(0)
}

type MockRegionSeeder struct {
	mock.Mock
}

func (m *MockRegionSeeder) SeedAround(ctx context.Context, center geo.Coordinates, city string) ([]*entities.Place, error) {
	args := m.Called(ctx, center, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Place), args.Error(1)
}

type MockPlacesProvider struct {
	mock.Mock
}

func (m *MockPlacesProvider) GetNearbyPlaces(ctx context.Context, query providers.NearbyQuery) ([]*providers.Place, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*providers.Place), args.Error(1)
}

// Fixtures

var jaipur = geo.Coordinates{Latitude: 26.9124, Longitude: 75.7873}

func place(id string, lat, lng, rating float64, categories ...string) *entities.Place {
	return &entities.Place{
		ID:         id,
		Name:       "Place " + id,
		Location:   entities.Location{Latitude: lat, Longitude: lng},
		Categories: categories,
		Rating:     rating,
	}
}

func km(v float64) *float64 {
	return &v
}

func plan(userID string, placeIDs ...string) *entities.Plan {
	p := &entities.Plan{ID: "plan-" + userID, UserID: userID}
	for i, id := range placeIDs {
		id := id
		p.SelectedPlaces = append(p.SelectedPlaces, entities.PlanEntry{Position: i, PlaceID: &id})
	}
	return p
}

func placeIDs(places []*entities.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.ID
	}
	return out
}
