package status

import (
	"context"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStatusService struct {
	mock.Mock
}

func NewMockStatusService() *MockStatusService {
	return &MockStatusService{}
}

func (m *MockStatusService) CreateStatus(ctx context.Context, ownerID uuid.UUID, in port.CreateStatusInput) (*domain.Status, error) {
	args := m.Called(ctx, ownerID, in)
	return args.Get(0).(*domain.Status), args.Error(1)
}

func (m *MockStatusService) DeleteStatus(ctx context.Context, callerID, statusID uuid.UUID) error {
	args := m.Called(ctx, callerID, statusID)
	return args.Error(0)
}

func (m *MockStatusService) GetUserStatuses(ctx context.Context, viewerID, ownerID uuid.UUID) ([]domain.Status, error) {
	args := m.Called(ctx, viewerID, ownerID)
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *MockStatusService) MarkViewed(ctx context.Context, statusID, viewerID uuid.UUID) error {
	args := m.Called(ctx, statusID, viewerID)
	return args.Error(0)
}

func (m *MockStatusService) ResolveMedia(ctx context.Context, viewerID, statusID uuid.UUID) (string, *time.Time, error) {
	args := m.Called(ctx, viewerID, statusID)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}

func (m *MockStatusService) ViewCount(ctx context.Context, callerID, statusID uuid.UUID) (int, error) {
	args := m.Called(ctx, callerID, statusID)
	return args.Int(0), args.Error(1)
}
