package mocks

import (
	"context"

	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/tripflow"
	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"github.com/stretchr/testify/mock"
)

// MockTripService is a mock implementation of TripService
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) CreateSession(ctx context.Context) (tripflow.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(tripflow.Snapshot), args.Error(1)
}

func (m *MockTripService) GetSession(ctx context.Context, sessionID string) (tripflow.Snapshot, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(tripflow.Snapshot), args.Error(1)
}

func (m *MockTripService) Dispatch(ctx context.Context, sessionID string, ev tripflow.Event) (tripflow.Snapshot, bool, error) {
	args := m.Called(ctx, sessionID, ev)
	return args.Get(0).(tripflow.Snapshot), args.Bool(1), args.Error(2)
}

func (m *MockTripService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockTripService) ListScenarios(ctx context.Context) []models.TripScenario {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.TripScenario)
}

func (m *MockTripService) GetScenario(ctx context.Context, id string) (models.TripScenario, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.TripScenario), args.Error(1)
}

func (m *MockTripService) ResolveScenario(ctx context.Context, query string) models.TripScenario {
	args := m.Called(ctx, query)
	return args.Get(0).(models.TripScenario)
}
