package sweep

import (
	"context"
	"statushub/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockSweepService struct {
	mock.Mock
}

func NewMockSweepService() *MockSweepService {
	return &MockSweepService{}
}

func (m *MockSweepService) Run(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(domain.SweepReport), args.Error(1)
}
