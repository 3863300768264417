package feed

import (
	"context"
	"statushub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFeedService struct {
	mock.Mock
}

func NewMockFeedService() *MockFeedService {
	return &MockFeedService{}
}

func (m *MockFeedService) GetFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.FeedItem, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]domain.FeedItem), args.Error(1)
}

func (m *MockFeedService) GetContactsFeed(ctx context.Context, viewerID uuid.UUID) ([]domain.FeedItem, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]domain.FeedItem), args.Error(1)
}
