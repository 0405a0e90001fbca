package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
)

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewClientFromDB(db), sqlMock
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
